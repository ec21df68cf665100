package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"badtakes/internal/models"
)

// submissionColumns is the standard column list for submission queries.
const submissionColumns = `id, image_url, image_path, platform, source_date, topic,
	language, description, submitted_by_ip, status, created_at, reviewed_at`

// ListFilter narrows the public gallery listing. Zero values mean "no filter".
type ListFilter struct {
	Language string
	Platform string
	Topic    string
	Year     int
	Search   string // substring match against description
	Page     int    // zero-based
	Limit    int
}

// scanSubmission scans a row into a Submission struct.
func scanSubmission(row pgx.Row) (*models.Submission, error) {
	var sub models.Submission
	err := row.Scan(
		&sub.ID,
		&sub.ImageURL,
		&sub.ImagePath,
		&sub.Platform,
		&sub.SourceDate,
		&sub.Topic,
		&sub.Language,
		&sub.Description,
		&sub.SubmittedByIP,
		&sub.Status,
		&sub.CreatedAt,
		&sub.ReviewedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// scanSubmissions scans multiple rows into a slice of Submissions.
func scanSubmissions(rows pgx.Rows) ([]models.Submission, error) {
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.ImageURL,
			&sub.ImagePath,
			&sub.Platform,
			&sub.SourceDate,
			&sub.Topic,
			&sub.Language,
			&sub.Description,
			&sub.SubmittedByIP,
			&sub.Status,
			&sub.CreatedAt,
			&sub.ReviewedAt,
		); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// CreateSubmission inserts a new submission with pending status.
func (d *DB) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO submissions (image_url, image_path, platform, source_date, topic, language, description, submitted_by_ip, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := d.Pool.QueryRow(ctx, query,
		sub.ImageURL,
		sub.ImagePath,
		sub.Platform,
		sub.SourceDate,
		sub.Topic,
		sub.Language,
		sub.Description,
		sub.SubmittedByIP,
		models.StatusPending,
	).Scan(&sub.ID, &sub.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateImagePath
		}
		return err
	}

	sub.Status = models.StatusPending
	sub.ReviewedAt = nil
	return nil
}

// buildListApprovedWhere assembles the WHERE clause shared by the listing
// query and its count query.
func buildListApprovedWhere(filter ListFilter) (string, []any) {
	clauses := []string{"status = $1"}
	args := []any{models.StatusApproved}

	next := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	if filter.Language != "" {
		clauses = append(clauses, "language = "+next())
		args = append(args, filter.Language)
	}
	if filter.Platform != "" {
		clauses = append(clauses, "platform = "+next())
		args = append(args, filter.Platform)
	}
	if filter.Topic != "" {
		clauses = append(clauses, "topic = "+next())
		args = append(args, filter.Topic)
	}
	if filter.Search != "" {
		clauses = append(clauses, "description ILIKE "+next())
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Year != 0 {
		clauses = append(clauses, "source_date >= "+next())
		args = append(args, fmt.Sprintf("%04d-01-01", filter.Year))
		clauses = append(clauses, "source_date <= "+next())
		args = append(args, fmt.Sprintf("%04d-12-31", filter.Year))
	}

	return strings.Join(clauses, " AND "), args
}

// ListApproved returns a page of approved submissions matching the filter,
// ordered by source date descending, along with the exact total match count.
func (d *DB) ListApproved(ctx context.Context, filter ListFilter) ([]models.Submission, int, error) {
	where, args := buildListApprovedWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM submissions WHERE " + where
	if err := d.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM submissions WHERE %s ORDER BY source_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		submissionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Page*filter.Limit)

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	subs, err := scanSubmissions(rows)
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

// AvailableYears returns the distinct years present among approved
// submissions, newest first. Used to build the gallery's year filter.
func (d *DB) AvailableYears(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM source_date)::int AS year
		FROM submissions
		WHERE status = $1
		ORDER BY year DESC
	`

	rows, err := d.Pool.Query(ctx, query, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, year)
	}

	return years, rows.Err()
}

// ListByStatus returns all submissions with the given status. Pending
// submissions come oldest-first so moderators work through the queue in
// arrival order; reviewed ones come newest-first.
func (d *DB) ListByStatus(ctx context.Context, status models.Status) ([]models.Submission, error) {
	order := "DESC"
	if status == models.StatusPending {
		order = "ASC"
	}

	query := fmt.Sprintf(
		"SELECT %s FROM submissions WHERE status = $1 ORDER BY created_at %s",
		submissionColumns, order,
	)

	rows, err := d.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}

	return scanSubmissions(rows)
}

// GetSubmissionByID returns a single submission by its id.
func (d *DB) GetSubmissionByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	query := fmt.Sprintf("SELECT %s FROM submissions WHERE id = $1", submissionColumns)
	return scanSubmission(d.Pool.QueryRow(ctx, query, id))
}

// ReviewSubmission transitions a pending submission to approved or rejected
// and stamps reviewed_at. A submission transitions at most once: reviewing a
// record that already left pending returns ErrAlreadyReviewed.
func (d *DB) ReviewSubmission(ctx context.Context, id uuid.UUID, status models.Status) (*models.Submission, error) {
	if !status.Reviewed() {
		return nil, fmt.Errorf("invalid review status %q", status)
	}

	query := fmt.Sprintf(`
		UPDATE submissions
		SET status = $1, reviewed_at = $2
		WHERE id = $3 AND status = $4
		RETURNING %s
	`, submissionColumns)

	sub, err := scanSubmission(d.Pool.QueryRow(ctx, query, status, time.Now(), id, models.StatusPending))
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, ErrSubmissionNotFound) {
		return nil, err
	}

	// Distinguish "no such record" from "already reviewed".
	if _, getErr := d.GetSubmissionByID(ctx, id); getErr == nil {
		return nil, ErrAlreadyReviewed
	}
	return nil, ErrSubmissionNotFound
}

// DeleteSubmission removes a submission record. The caller is responsible
// for deleting the associated blob first.
func (d *DB) DeleteSubmission(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, "DELETE FROM submissions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// ListImagePaths returns the storage keys of all submissions. Used by the
// orphan sweeper to reconcile the blob store against the database.
func (d *DB) ListImagePaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := d.Pool.Query(ctx, "SELECT image_path FROM submissions")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string]struct{})
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths[path] = struct{}{}
	}

	return paths, rows.Err()
}

// CountByStatus returns submission counts grouped by status. Used by the
// Prometheus collector.
func (d *DB) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := d.Pool.Query(ctx, "SELECT status, COUNT(*) FROM submissions GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Status]int)
	for rows.Next() {
		var status models.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}

	return counts, rows.Err()
}
