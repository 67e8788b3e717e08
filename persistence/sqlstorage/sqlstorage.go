package sqlstorage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	localCommon "github.com/0xPolygon/zkevm-sequencer-core/common"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jackc/pgconn"
	_ "github.com/jackc/pgx/v4/stdlib" // registers the pgx driver
	sqlite "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/russross/meddler"
)

const (
	networkConfigTable = "network_config"
	daProposalsTable   = "da_proposals"
	vidSharesTable     = "vid_shares"
	latestActionTable  = "latest_action"

	// pgUniqueViolation is the postgres SQLSTATE for duplicate keys
	pgUniqueViolation = "23505"
)

var (
	errNoRowsInResultSet = errors.New("sql: no rows in result set")

	memoryDBCounter atomic.Uint64
)

var _ types.Persistence = (*SqlStorage)(nil)

type networkConfigRow struct {
	ID        int                 `meddler:"id"`
	Config    types.NetworkConfig `meddler:"config,json"`
	CreatedAt time.Time           `meddler:"created_at,timeRFC3339"`
}

type daProposalRow struct {
	View      uint64           `meddler:"view_number"`
	Data      types.DAProposal `meddler:"data,json"`
	Signature hexutil.Bytes    `meddler:"signature,hexBytes"`
	CreatedAt time.Time        `meddler:"created_at,timeRFC3339"`
}

type vidShareRow struct {
	View              uint64                 `meddler:"view_number"`
	PayloadCommitment common.Hash            `meddler:"payload_commitment,hash"`
	Data              types.VidDisperseShare `meddler:"data,json"`
	Signature         hexutil.Bytes          `meddler:"signature,hexBytes"`
	CreatedAt         time.Time              `meddler:"created_at,timeRFC3339"`
}

type latestActionRow struct {
	View   uint64 `meddler:"view_number"`
	Action int    `meddler:"action"`
}

// SqlStorage persists consensus artifacts in sqlite or postgres.
type SqlStorage struct {
	db *sql.DB
	d  *meddler.Database
}

// NewStorage creates and returns a new instance of SqlStorage with the given data source.
// It first opens a connection to the database and then runs the necessary migrations.
// For sqlite the path ":memory:" opens a private in memory database.
func NewStorage(driverName, dataSource string) (*SqlStorage, error) {
	var dialect *meddler.Database
	switch driverName {
	case localCommon.SQLLiteDriverName:
		dialect = meddler.SQLite
		if dataSource == ":memory:" {
			dataSource = fmt.Sprintf("file:sequencer%d?mode=memory&cache=shared", memoryDBCounter.Add(1))
		}
	case localCommon.PostgresDriverName:
		dialect = meddler.PostgreSQL
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driverName)
	}

	db, err := sql.Open(driverName, dataSource)
	if err != nil {
		return nil, err
	}

	if driverName == localCommon.SQLLiteDriverName {
		_, err = db.Exec(`
			pragma journal_mode = WAL;
			PRAGMA foreign_keys = ON;
			pragma synchronous = normal;
			pragma journal_size_limit  = 6144000;
		`)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	if err := RunMigrations(driverName, db, migrate.Up); err != nil {
		db.Close()
		return nil, err
	}

	initMeddler()

	return &SqlStorage{db: db, d: dialect}, nil
}

// LoadConfig returns the saved network config
func (s *SqlStorage) LoadConfig(_ context.Context) (*types.NetworkConfig, error) {
	query, err := buildBaseSelectQuery(&networkConfigRow{}, networkConfigTable)
	if err != nil {
		return nil, err
	}

	var row networkConfigRow
	if err := s.d.QueryRow(s.db, &row, query+" WHERE id = 1"); err != nil {
		return nil, translateNotFound(err)
	}
	return &row.Config, nil
}

// SaveConfig stores the network config, replacing any previous one
func (s *SqlStorage) SaveConfig(ctx context.Context, cfg types.NetworkConfig) error {
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	createdAt, err := TimeRFC3339Meddler{}.PreWrite(time.Now())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+networkConfigTable+" (id, config, created_at) VALUES (1, $1, $2) "+
			"ON CONFLICT (id) DO UPDATE SET config = excluded.config",
		string(encoded), createdAt)
	return err
}

// AppendDA stores the DA proposal of a view
func (s *SqlStorage) AppendDA(_ context.Context, proposal types.Proposal[types.DAProposal]) error {
	row := daProposalRow{
		View:      uint64(proposal.Data.View),
		Data:      proposal.Data,
		Signature: proposal.Signature,
		CreatedAt: time.Now(),
	}
	return translateInsertErr(s.d.Insert(s.db, daProposalsTable, &row))
}

// AppendVID stores the VID share of a view
func (s *SqlStorage) AppendVID(_ context.Context, share types.Proposal[types.VidDisperseShare]) error {
	row := vidShareRow{
		View:              uint64(share.Data.View),
		PayloadCommitment: share.Data.PayloadCommitment,
		Data:              share.Data,
		Signature:         share.Signature,
		CreatedAt:         time.Now(),
	}
	return translateInsertErr(s.d.Insert(s.db, vidSharesTable, &row))
}

// RecordAction remembers the highest view voted or proposed in
func (s *SqlStorage) RecordAction(ctx context.Context, view types.View, action types.Action) error {
	if !action.IsVoteOrPropose() {
		return nil
	}
	updatedAt, err := TimeRFC3339Meddler{}.PreWrite(time.Now())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+latestActionTable+" (id, view_number, action, updated_at) VALUES (1, $1, $2, $3) "+
			"ON CONFLICT (id) DO UPDATE SET view_number = excluded.view_number, action = excluded.action, "+
			"updated_at = excluded.updated_at WHERE "+latestActionTable+".view_number < excluded.view_number",
		uint64(view), int(action), updatedAt)
	return err
}

// LoadDAProposal loads the DA proposal of a view
func (s *SqlStorage) LoadDAProposal(_ context.Context, view types.View) (*types.Proposal[types.DAProposal], error) {
	query, err := buildBaseSelectQuery(&daProposalRow{}, daProposalsTable)
	if err != nil {
		return nil, err
	}

	var row daProposalRow
	if err := s.d.QueryRow(s.db, &row, query+" WHERE view_number = $1", uint64(view)); err != nil {
		return nil, translateNotFound(err)
	}
	return &types.Proposal[types.DAProposal]{Data: row.Data, Signature: row.Signature}, nil
}

// LoadVIDShare loads the VID share of a view
func (s *SqlStorage) LoadVIDShare(_ context.Context, view types.View) (*types.Proposal[types.VidDisperseShare], error) {
	query, err := buildBaseSelectQuery(&vidShareRow{}, vidSharesTable)
	if err != nil {
		return nil, err
	}

	var row vidShareRow
	if err := s.d.QueryRow(s.db, &row, query+" WHERE view_number = $1", uint64(view)); err != nil {
		return nil, translateNotFound(err)
	}
	return &types.Proposal[types.VidDisperseShare]{Data: row.Data, Signature: row.Signature}, nil
}

// LoadLatestAction returns the last recorded vote or proposal
func (s *SqlStorage) LoadLatestAction(_ context.Context) (types.View, types.Action, error) {
	query, err := buildBaseSelectQuery(&latestActionRow{}, latestActionTable)
	if err != nil {
		return 0, 0, err
	}

	var row latestActionRow
	if err := s.d.QueryRow(s.db, &row, query+" WHERE id = 1"); err != nil {
		return 0, 0, translateNotFound(err)
	}
	return types.View(row.View), types.Action(row.Action), nil
}

// Close closes the database connection
func (s *SqlStorage) Close() error {
	return s.db.Close()
}

// buildBaseSelectQuery creates the SELECT statement for the meddler columns of src
func buildBaseSelectQuery(src interface{}, tableName string) (string, error) {
	var queryBuilder strings.Builder
	cols, err := meddler.Columns(src, false)
	if err != nil {
		return "", err
	}

	queryBuilder.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM " + tableName)

	return queryBuilder.String(), nil
}

func translateNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) || err.Error() == errNoRowsInResultSet.Error() {
		return types.ErrNotFound
	}
	return err
}

// translateInsertErr maps unique key violations of either backend to ErrAlreadyExists
func translateInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if sqlErr, ok := unwrapSQLiteErr(err); ok && sqlErr.Code == sqlite.ErrConstraint {
		return types.ErrAlreadyExists
	}
	if pgErr, ok := unwrapPgErr(err); ok && pgErr.Code == pgUniqueViolation {
		return types.ErrAlreadyExists
	}
	return err
}

// unwrapSQLiteErr attempts to extract a sqlite.Error from the given error.
// It first checks if the error is directly of type sqlite.Error, and if not,
// it tries to unwrap it from a meddler.DriverErr.
func unwrapSQLiteErr(err error) (*sqlite.Error, bool) {
	sqliteErr := &sqlite.Error{}
	if ok := errors.As(err, sqliteErr); ok {
		return sqliteErr, true
	}

	if driverErr, ok := meddler.DriverErr(err); ok {
		return sqliteErr, errors.As(driverErr, sqliteErr)
	}

	return sqliteErr, false
}

func unwrapPgErr(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	if driverErr, ok := meddler.DriverErr(err); ok {
		return pgErr, errors.As(driverErr, &pgErr)
	}

	return nil, false
}
