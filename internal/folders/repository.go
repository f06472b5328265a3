package folders

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/folio/internal/access"
	"github.com/JaimeStill/folio/pkg/pagination"
	"github.com/JaimeStill/folio/pkg/query"
	"github.com/JaimeStill/folio/pkg/repository"
	"github.com/JaimeStill/folio/pkg/validate"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a folder repository.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "folders"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Folder], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "label", "location", "description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count folders: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanFolder)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Folder, error) {
	q, args := query.
		NewBuilder(projection).
		BuildSingle("id", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanFolder)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) Create(ctx context.Context, rc access.RequestContext, cmd CreateCommand) (*Folder, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd.Label = strings.TrimSpace(cmd.Label)
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	q := `INSERT INTO folders (id, label, location, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + columns

	now := time.Now().UTC()
	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Folder, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			uuid.Must(uuid.NewV7()), cmd.Label, strings.TrimSpace(cmd.Location), cmd.Description, now,
		}, scanFolder)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("folder created", "id", f.ID, "label", f.Label, "user", rc.UserID)
	return &f, nil
}

func (r *repo) Update(ctx context.Context, rc access.RequestContext, id uuid.UUID, cmd UpdateCommand) (*Folder, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	cmd.Label = strings.TrimSpace(cmd.Label)
	if err := validate.Struct(cmd); err != nil {
		return nil, err
	}

	q := `UPDATE folders SET label = $1, location = $2, description = $3, updated_at = $4
		WHERE id = $5
		RETURNING ` + columns

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Folder, error) {
		return repository.QueryOne(ctx, tx, q, []any{
			cmd.Label, strings.TrimSpace(cmd.Location), cmd.Description, time.Now().UTC(), id,
		}, scanFolder)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("folder updated", "id", f.ID, "label", f.Label, "user", rc.UserID)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, rc access.RequestContext, id uuid.UUID) error {
	if err := rc.Validate(); err != nil {
		return err
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents WHERE folder_id = $1`, id).Scan(&count); err != nil {
			return struct{}{}, fmt.Errorf("count folder documents: %w", err)
		}
		if count > 0 {
			return struct{}{}, fmt.Errorf("%w: %d documents", ErrInUse, count)
		}

		err := repository.ExecExpectOne(ctx, tx, `DELETE FROM folders WHERE id = $1`, id)
		if repository.IsForeignKeyViolation(err) {
			return struct{}{}, ErrInUse
		}
		return struct{}{}, err
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("folder deleted", "id", id, "user", rc.UserID)
	return nil
}
