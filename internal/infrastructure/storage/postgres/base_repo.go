package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"quizbank/internal/core/apperror"
	"quizbank/internal/core/id"
	"quizbank/internal/domain"
	"quizbank/internal/domain/filter"
)

// BaseRepo provides common CRUD for soft-deletable entities. Embed it in
// specific repositories. It implements domain.Repository[T], which includes
// the lifecycle.Store contract the restore engine runs against.
//
// Default read paths see live rows only (deleted_at IS NULL); the
// include-deleted paths exist for the restore engine and the admin surface.
type BaseRepo[T domain.Entity] struct {
	txm        *TxManager
	tableName  string
	selectCols []string
	searchCols []string
	newFn      func() T
}

// NewBaseRepo creates a base repository.
// searchCols are the columns matched by ListFilter.Search.
func NewBaseRepo[T domain.Entity](
	txm *TxManager,
	tableName string,
	searchCols []string,
	newFn func() T,
) *BaseRepo[T] {
	return &BaseRepo[T]{
		txm:        txm,
		tableName:  tableName,
		selectCols: ExtractDBColumns[T](),
		searchCols: searchCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the active transaction's querier, or the pool.
func (r *BaseRepo[T]) Querier(ctx context.Context) Querier {
	return r.txm.GetQuerier(ctx)
}

// TableName returns the backing table.
func (r *BaseRepo[T]) TableName() string {
	return r.tableName
}

func (r *BaseRepo[T]) live() squirrel.Eq {
	return squirrel.Eq{"deleted_at": nil}
}

// isUniqueViolation reports a postgres unique-constraint violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create inserts a new entity using its "db" tags.
func (r *BaseRepo[T]) Create(ctx context.Context, entity T) error {
	data := StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate(r.tableName, "unique field", "").WithCause(err)
		}
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}

	return nil
}

// Update modifies an existing live entity with optimistic locking.
func (r *BaseRepo[T]) Update(ctx context.Context, entity T) error {
	data := StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	entityID, ok := data["id"]
	if !ok {
		return fmt.Errorf("entity has no 'id' field with db tag")
	}

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		switch col {
		case "id", "version", "deleted_at", "deleted_by":
			// id is immutable; version is managed here; deletion state is
			// only written through SetDeleted/ClearDeleted.
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.Eq{"version": version}).
		Where(r.live())

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate(r.tableName, "unique field", "").WithCause(err)
		}
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, entityID)
	}

	return nil
}

func (r *BaseRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// LiveSelect returns a SELECT over live rows for entity-specific queries.
func (r *BaseRepo[T]) LiveSelect() squirrel.SelectBuilder {
	return r.baseSelect().Where(r.live())
}

// GetByID retrieves a live entity by ID.
func (r *BaseRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Where(r.live()).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get by id: %w", err)
	}

	return entity, nil
}

// GetLive is the restore engine's live-row lookup; same path as GetByID.
func (r *BaseRepo[T]) GetLive(ctx context.Context, entityID id.ID) (T, error) {
	return r.GetByID(ctx, entityID)
}

// GetIncludingDeleted retrieves an entity regardless of deletion state.
func (r *BaseRepo[T]) GetIncludingDeleted(ctx context.Context, entityID id.ID) (T, error) {
	entity := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, entityID.String())
		}
		return entity, fmt.Errorf("get including deleted: %w", err)
	}

	return entity, nil
}

// SetDeleted stamps deleted_at and deleted_by on a live row, atomically.
// Both fields are stamped together, never one without the other; the engine
// rejects nil actors before this runs and the schema CHECK backstops it.
func (r *BaseRepo[T]) SetDeleted(ctx context.Context, entityID id.ID, actor id.ID, at time.Time) error {
	if id.IsNil(actor) {
		return apperror.NewValidation("deleted_by requires an actor").
			WithDetail("table", r.tableName)
	}

	q := r.Builder().
		Update(r.tableName).
		Set("deleted_at", at).
		Set("deleted_by", actor).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(r.live())

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build set deleted: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("execute set deleted: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// ClearDeleted clears deleted_at and deleted_by on a deleted row, atomically.
// A unique violation from the live-scoped partial index means the advisory
// conflict check raced a concurrent write; it surfaces as DUPLICATE_ENTRY.
func (r *BaseRepo[T]) ClearDeleted(ctx context.Context, entityID id.ID) error {
	q := r.Builder().
		Update(r.tableName).
		Set("deleted_at", nil).
		Set("deleted_by", nil).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": entityID}).
		Where(squirrel.NotEq{"deleted_at": nil})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build clear deleted: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate(r.tableName, "unique field", "").WithCause(err)
		}
		return fmt.Errorf("execute clear deleted: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, entityID.String())
	}

	return nil
}

// HasLiveConflict reports whether any live row other than excludeID matches
// all given column values.
func (r *BaseRepo[T]) HasLiveConflict(ctx context.Context, values map[string]any, excludeID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(r.live()).
		Where(squirrel.NotEq{"id": excludeID}).
		Limit(1)

	for col, val := range values {
		q = q.Where(squirrel.Eq{col: val})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build conflict query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("conflict check: %w", err)
	}

	return true, nil
}

// List retrieves entities with filtering and pagination.
func (r *BaseRepo[T]) List(ctx context.Context, flt domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  flt.Limit,
		Offset: flt.Offset,
	}

	q := r.baseSelect()

	if !flt.IncludeDeleted {
		q = q.Where(r.live())
	}

	if flt.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + flt.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(flt.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": flt.IDs})
	}

	var err error
	q, err = r.applyAdvancedFilters(q, flt.AdvancedFilters)
	if err != nil {
		return domain.ListResult[T]{}, err
	}

	// Count total (before pagination)
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(flt.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if flt.Limit > 0 {
		q = q.Limit(uint64(flt.Limit))
	}
	if flt.Offset > 0 {
		q = q.Offset(uint64(flt.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

// applyAdvancedFilters applies complex filters to query.
func (r *BaseRepo[T]) applyAdvancedFilters(q squirrel.SelectBuilder, filters []filter.Item) (squirrel.SelectBuilder, error) {
	// Whitelist columns for SQL injection protection
	validCols := make(map[string]bool, len(r.selectCols))
	for _, col := range r.selectCols {
		validCols[col] = true
	}

	for _, item := range filters {
		if !validCols[item.Field] {
			return q, apperror.NewValidation("invalid filter column").WithDetail("field", item.Field)
		}

		switch item.Operator {
		case filter.Equal:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotEqual:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.Less:
			q = q.Where(squirrel.Lt{item.Field: item.Value})
		case filter.Greater:
			q = q.Where(squirrel.Gt{item.Field: item.Value})
		case filter.LessOrEqual:
			q = q.Where(squirrel.LtOrEq{item.Field: item.Value})
		case filter.GreaterOrEqual:
			q = q.Where(squirrel.GtOrEq{item.Field: item.Value})
		case filter.InList:
			q = q.Where(squirrel.Eq{item.Field: item.Value})
		case filter.NotInList:
			q = q.Where(squirrel.NotEq{item.Field: item.Value})
		case filter.IsNull:
			q = q.Where(squirrel.Eq{item.Field: nil})
		case filter.IsNotNull:
			q = q.Where(squirrel.NotEq{item.Field: nil})
		case filter.Contains:
			val := fmt.Sprintf("%%%v%%", item.Value)
			q = q.Where(squirrel.ILike{item.Field: val})
		case filter.NotContains:
			val := fmt.Sprintf("%%%v%%", item.Value)
			q = q.Where(squirrel.NotILike{item.Field: val})
		default:
			return q, apperror.NewValidation("invalid filter operator").
				WithDetail("operator", string(item.Operator))
		}
	}

	return q, nil
}

// Exists checks if a live entity exists.
func (r *BaseRepo[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": entityID}).
		Where(r.live()).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}

	return true, nil
}

// FindOne executes a SELECT query and returns a single entity.
func (r *BaseRepo[T]) FindOne(ctx context.Context, q squirrel.SelectBuilder) (T, error) {
	entity := r.newFn()

	sql, args, err := q.ToSql()
	if err != nil {
		return entity, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), entity, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return entity, apperror.NewNotFound(r.tableName, "matching query")
		}
		return entity, fmt.Errorf("find one: %w", err)
	}

	return entity, nil
}

// FindMany executes a SELECT query and returns all matching entities.
func (r *BaseRepo[T]) FindMany(ctx context.Context, q squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.Querier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("find many: %w", err)
	}
	return items, nil
}

func (r *BaseRepo[T]) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if orderBy == "" {
		return "created_at DESC", nil
	}

	// Support "-field" for DESC.
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if field == "" {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy).WithDetail("field", field)
	}

	return field + " " + direction, nil
}
