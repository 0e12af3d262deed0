package db

import (
	"fmt"

	"github.com/beatwave/onair/common"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

/*
GetSqliteDialector define Sqlite GORM dialector

	@param dbFile string - Sqlite DB file
	@return GORM sqlite dialector
*/
func GetSqliteDialector(dbFile string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("%s?_foreign_keys=on", dbFile))
}

/*
GetInMemSqliteDialector define a in-memory Sqlite GORM dialector

	@param dbName string - in-memory Sqlite DB name
	@return GORM sqlite dialector
*/
func GetInMemSqliteDialector(dbName string) gorm.Dialector {
	return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", dbName))
}

/*
GetPostgresDialector define Postgres GORM dialector

	@param config common.PostgresConfig - connection config
	@param password string - user password
	@return GORM postgres dialector
*/
func GetPostgresDialector(config common.PostgresConfig, password string) gorm.Dialector {
	sslMode := "disable"
	if config.SSL.Enabled {
		sslMode = "require"
		if config.SSL.CAFile != nil {
			sslMode = "verify-full"
		}
	}
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Database, sslMode,
	)
	if password != "" {
		dsn = fmt.Sprintf("%s password=%s", dsn, password)
	}
	if config.SSL.Enabled && config.SSL.CAFile != nil {
		dsn = fmt.Sprintf("%s sslrootcert=%s", dsn, *config.SSL.CAFile)
	}
	return postgres.Open(dsn)
}
