package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"stayledger/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Balance mutations and anything read inside a
// transaction always go through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	write := connect(config, "write", pg.Write)

	// Without a replica, reads share the primary pool.
	if !pg.Read.IsSet() {
		log.Warn().Msg("No read replica configured, reads use the write connection")

		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connect(config, "read", pg.Read),
		Write: write,
	}
}

// Descriptor builds the lib/pq URL for a node. The node timezone becomes the session TimeZone.
func Descriptor(config *config.Config, node config.PostgresNode) string {
	query := url.Values{}
	if node.SSLMode != "" {
		query.Set("sslmode", node.SSLMode)
	}

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     config.DB.Postgres.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(config *config.Config, name string, node config.PostgresNode) *sqlx.DB {
	pg := config.DB.Postgres
	dbName := pg.Prefix + node.Name

	attempts := max(pg.MaxRetry, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, Descriptor(config, node))
		if err == nil {
			db.SetMaxOpenConns(pg.MaxOpenConns)
			db.SetMaxIdleConns(pg.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeMin) * time.Minute)

			log.Info().
				Str("name", name).
				Str("host", node.Host).
				Str("dbName", dbName).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Str("host", node.Host).
			Str("dbName", dbName).
			Int("attempt", attempt).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}
