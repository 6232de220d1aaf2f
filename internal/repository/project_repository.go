package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// ProjectFilter captures the public browse parameters. Category, state and
// city match exactly; Location substring-matches location, city or state;
// Search substring-matches title or description. Location and Search
// combine with AND.
type ProjectFilter struct {
	Category *string
	State    *string
	City     *string
	Location *string
	Search   *string
}

// ProjectPatch lists the fields the owning organization may update. The
// derived counters are excluded; they move only through IncrementCounters.
type ProjectPatch struct {
	Title            *string
	Description      *string
	Category         *string
	Location         *string
	State            *string
	City             *string
	SkillsRequired   *[]string
	TimeCommitment   *string
	VolunteersNeeded *int
	ImageURL         *string
	Status           *domain.ProjectStatus
	StartDate        *time.Time
	EndDate          *time.Time
}

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	// Delete removes the project and its dependent applications in one
	// transaction. It reports whether a row was deleted.
	Delete(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.ProjectWithOrganization, error)
	List(ctx context.Context, filter ProjectFilter) ([]domain.ProjectWithOrganization, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error)
	// IncrementCounters atomically adjusts the derived counters. Zero
	// deltas are skipped entirely.
	IncrementCounters(ctx context.Context, id string, joinedDelta, applicationsDelta int) error
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

const projectColumns = `p.id, p.title, p.description, p.category, p.location, p.state, p.city,
               p.organization_id, p.skills_required, p.time_commitment, p.volunteers_needed,
               p.volunteers_joined, p.total_applications, p.image_url, p.status,
               p.start_date, p.end_date, p.created_at, p.updated_at`

const organizationColumns = `o.id, o.email, o.password_hash, o.first_name, o.last_name, o.role, o.phone,
               o.location, o.skills, o.bio, o.profile_picture, o.verified, o.legacy_auth_id,
               o.created_at, o.updated_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (title, description, category, location, state, city, organization_id,
            skills_required, time_commitment, volunteers_needed, image_url, status, start_date, end_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, volunteers_joined, total_applications, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Category,
		project.Location,
		project.State,
		project.City,
		project.OrganizationID,
		project.SkillsRequired,
		project.TimeCommitment,
		project.VolunteersNeeded,
		project.ImageURL,
		project.Status,
		project.StartDate,
		project.EndDate,
	).Scan(&project.ID, &project.VolunteersJoined, &project.TotalApplications, &project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) Update(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if patch.Title != nil {
		addSet("title", *patch.Title)
	}
	if patch.Description != nil {
		addSet("description", *patch.Description)
	}
	if patch.Category != nil {
		addSet("category", *patch.Category)
	}
	if patch.Location != nil {
		addSet("location", *patch.Location)
	}
	if patch.State != nil {
		addSet("state", *patch.State)
	}
	if patch.City != nil {
		addSet("city", *patch.City)
	}
	if patch.SkillsRequired != nil {
		addSet("skills_required", *patch.SkillsRequired)
	}
	if patch.TimeCommitment != nil {
		addSet("time_commitment", *patch.TimeCommitment)
	}
	if patch.VolunteersNeeded != nil {
		addSet("volunteers_needed", *patch.VolunteersNeeded)
	}
	if patch.ImageURL != nil {
		addSet("image_url", *patch.ImageURL)
	}
	if patch.Status != nil {
		addSet("status", *patch.Status)
	}
	if patch.StartDate != nil {
		addSet("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		addSet("end_date", *patch.EndDate)
	}

	if len(sets) == 0 {
		return r.getPlain(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE projects p SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), projectColumns)

	var project domain.Project
	if err := scanProject(r.pool.QueryRow(ctx, query, args...), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE project_id=$1`, id); err != nil {
		return false, err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.ProjectWithOrganization, error) {
	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM projects p
        JOIN users o ON o.id = p.organization_id
        WHERE p.id=$1`, projectColumns, organizationColumns)

	var result domain.ProjectWithOrganization
	var org domain.User
	row := r.pool.QueryRow(ctx, query, id)
	if err := scanProjectWithOrganization(row, &result.Project, &org); err != nil {
		return nil, err
	}
	result.Organization = &org
	return &result, nil
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]domain.ProjectWithOrganization, error) {
	clauses := []string{"p.status='active'"}
	args := []any{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("p.category=$%d", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		clauses = append(clauses, fmt.Sprintf("p.state=$%d", len(args)))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		clauses = append(clauses, fmt.Sprintf("p.city=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(p.location) LIKE %s OR LOWER(p.city) LIKE %s OR LOWER(p.state) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Search))+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(p.title) LIKE %s OR LOWER(p.description) LIKE %s)",
			placeholder, placeholder))
	}

	query := fmt.Sprintf(`
        SELECT %s, %s
        FROM projects p
        JOIN users o ON o.id = p.organization_id
        WHERE %s
        ORDER BY p.created_at DESC`, projectColumns, organizationColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProjectWithOrganization
	for rows.Next() {
		var item domain.ProjectWithOrganization
		var org domain.User
		if err := scanProjectWithOrganization(rows, &item.Project, &org); err != nil {
			return nil, err
		}
		item.Organization = &org
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *projectRepository) ListByOrganization(ctx context.Context, organizationID string) ([]domain.Project, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM projects p
        WHERE p.organization_id=$1
        ORDER BY p.created_at DESC`, projectColumns)

	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Project
	for rows.Next() {
		var project domain.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	return result, rows.Err()
}

func (r *projectRepository) IncrementCounters(ctx context.Context, id string, joinedDelta, applicationsDelta int) error {
	if joinedDelta == 0 && applicationsDelta == 0 {
		return nil
	}
	const query = `
        UPDATE projects
        SET volunteers_joined = volunteers_joined + $1,
            total_applications = total_applications + $2,
            updated_at = NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, joinedDelta, applicationsDelta, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *projectRepository) getPlain(ctx context.Context, id string) (*domain.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects p WHERE p.id=$1`, projectColumns)

	var project domain.Project
	if err := scanProject(r.pool.QueryRow(ctx, query, id), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func scanProject(row pgx.Row, project *domain.Project) error {
	return row.Scan(
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
	)
}

func scanProjectWithOrganization(row pgx.Row, project *domain.Project, org *domain.User) error {
	return row.Scan(
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
		&org.ID,
		&org.Email,
		&org.PasswordHash,
		&org.FirstName,
		&org.LastName,
		&org.Role,
		&org.Phone,
		&org.Location,
		&org.Skills,
		&org.Bio,
		&org.ProfilePicture,
		&org.Verified,
		&org.LegacyAuthID,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
}
