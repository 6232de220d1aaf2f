package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// ApplicationRepository encapsulates application persistence including the
// totalApplications counter maintenance that rides along with inserts and
// deletes.
type ApplicationRepository interface {
	// Create inserts the application and increments the parent project's
	// totalApplications in one transaction.
	Create(ctx context.Context, application *domain.Application) error
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
	// Delete removes the application and decrements the parent project's
	// totalApplications in one transaction. It reports whether a row was
	// deleted.
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.ApplicationDetail, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.ApplicationDetail, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]domain.ApplicationDetail, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.ApplicationDetail, error)
	ExistsForProject(ctx context.Context, projectID, volunteerID string) (bool, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = `a.id, a.project_id, a.volunteer_id, a.status, a.message, a.created_at, a.updated_at`

const volunteerColumns = `v.id, v.email, v.password_hash, v.first_name, v.last_name, v.role, v.phone,
               v.location, v.skills, v.bio, v.profile_picture, v.verified, v.legacy_auth_id,
               v.created_at, v.updated_at`

func (r *applicationRepository) Create(ctx context.Context, application *domain.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insert = `
        INSERT INTO applications (project_id, volunteer_id, status, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		application.ProjectID,
		application.VolunteerID,
		application.Status,
		application.Message,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt); err != nil {
		return err
	}

	const bump = `
        UPDATE projects SET total_applications = total_applications + 1, updated_at = NOW()
        WHERE id=$1`
	if _, err := tx.Exec(ctx, bump, application.ProjectID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	const query = `
        UPDATE applications a SET status=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + applicationColumns

	var application domain.Application
	if err := scanApplication(r.pool.QueryRow(ctx, query, status, id), &application); err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var projectID string
	err = tx.QueryRow(ctx, `DELETE FROM applications WHERE id=$1 RETURNING project_id`, id).Scan(&projectID)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	const drop = `
        UPDATE projects SET total_applications = GREATEST(total_applications - 1, 0), updated_at = NOW()
        WHERE id=$1`
	if _, err := tx.Exec(ctx, drop, projectID); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s, %s
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users v ON v.id = a.volunteer_id
        WHERE a.id=$1`, applicationColumns, projectColumns, volunteerColumns)

	var detail domain.ApplicationDetail
	var project domain.Project
	var volunteer domain.User
	if err := scanApplicationDetail(r.pool.QueryRow(ctx, query, id), &detail.Application, &project, &volunteer); err != nil {
		return nil, err
	}
	detail.Project = &project
	detail.Volunteer = &volunteer
	return &detail, nil
}

func (r *applicationRepository) ListByProject(ctx context.Context, projectID string) ([]domain.ApplicationDetail, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s, %s
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users v ON v.id = a.volunteer_id
        WHERE a.project_id=$1
        ORDER BY a.created_at DESC`, applicationColumns, projectColumns, volunteerColumns)

	return r.queryDetails(ctx, query, projectID)
}

func (r *applicationRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]domain.ApplicationDetail, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s, %s
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users v ON v.id = a.volunteer_id
        WHERE a.volunteer_id=$1
        ORDER BY a.created_at DESC`, applicationColumns, projectColumns, volunteerColumns)

	return r.queryDetails(ctx, query, volunteerID)
}

func (r *applicationRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.ApplicationDetail, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s, %s, %s
        FROM applications a
        JOIN projects p ON p.id = a.project_id
        JOIN users o ON o.id = p.organization_id
        JOIN users v ON v.id = a.volunteer_id
        WHERE p.organization_id=$1
        ORDER BY a.created_at DESC`, applicationColumns, projectColumns, organizationColumns, volunteerColumns)

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationDetail
	for rows.Next() {
		var detail domain.ApplicationDetail
		var project domain.Project
		var org domain.User
		var volunteer domain.User
		if err := rows.Scan(
			&detail.ID, &detail.ProjectID, &detail.VolunteerID, &detail.Status, &detail.Message,
			&detail.CreatedAt, &detail.UpdatedAt,
			&project.ID, &project.Title, &project.Description, &project.Category, &project.Location,
			&project.State, &project.City, &project.OrganizationID, &project.SkillsRequired,
			&project.TimeCommitment, &project.VolunteersNeeded, &project.VolunteersJoined,
			&project.TotalApplications, &project.ImageURL, &project.Status, &project.StartDate,
			&project.EndDate, &project.CreatedAt, &project.UpdatedAt,
			&org.ID, &org.Email, &org.PasswordHash, &org.FirstName, &org.LastName, &org.Role,
			&org.Phone, &org.Location, &org.Skills, &org.Bio, &org.ProfilePicture, &org.Verified,
			&org.LegacyAuthID, &org.CreatedAt, &org.UpdatedAt,
			&volunteer.ID, &volunteer.Email, &volunteer.PasswordHash, &volunteer.FirstName,
			&volunteer.LastName, &volunteer.Role, &volunteer.Phone, &volunteer.Location,
			&volunteer.Skills, &volunteer.Bio, &volunteer.ProfilePicture, &volunteer.Verified,
			&volunteer.LegacyAuthID, &volunteer.CreatedAt, &volunteer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		detail.Project = &project
		detail.Organization = &org
		detail.Volunteer = &volunteer
		result = append(result, detail)
	}
	return result, rows.Err()
}

func (r *applicationRepository) ExistsForProject(ctx context.Context, projectID, volunteerID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM applications WHERE project_id=$1 AND volunteer_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, projectID, volunteerID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *applicationRepository) queryDetails(ctx context.Context, query string, arg any) ([]domain.ApplicationDetail, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationDetail
	for rows.Next() {
		var detail domain.ApplicationDetail
		var project domain.Project
		var volunteer domain.User
		if err := scanApplicationDetail(rows, &detail.Application, &project, &volunteer); err != nil {
			return nil, err
		}
		detail.Project = &project
		detail.Volunteer = &volunteer
		result = append(result, detail)
	}
	return result, rows.Err()
}

func scanApplication(row pgx.Row, application *domain.Application) error {
	return row.Scan(
		&application.ID,
		&application.ProjectID,
		&application.VolunteerID,
		&application.Status,
		&application.Message,
		&application.CreatedAt,
		&application.UpdatedAt,
	)
}

func scanApplicationDetail(row pgx.Row, application *domain.Application, project *domain.Project, volunteer *domain.User) error {
	return row.Scan(
		&application.ID,
		&application.ProjectID,
		&application.VolunteerID,
		&application.Status,
		&application.Message,
		&application.CreatedAt,
		&application.UpdatedAt,
		&project.ID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.Location,
		&project.State,
		&project.City,
		&project.OrganizationID,
		&project.SkillsRequired,
		&project.TimeCommitment,
		&project.VolunteersNeeded,
		&project.VolunteersJoined,
		&project.TotalApplications,
		&project.ImageURL,
		&project.Status,
		&project.StartDate,
		&project.EndDate,
		&project.CreatedAt,
		&project.UpdatedAt,
		&volunteer.ID,
		&volunteer.Email,
		&volunteer.PasswordHash,
		&volunteer.FirstName,
		&volunteer.LastName,
		&volunteer.Role,
		&volunteer.Phone,
		&volunteer.Location,
		&volunteer.Skills,
		&volunteer.Bio,
		&volunteer.ProfilePicture,
		&volunteer.Verified,
		&volunteer.LegacyAuthID,
		&volunteer.CreatedAt,
		&volunteer.UpdatedAt,
	)
}
