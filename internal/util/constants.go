package util

const (
	StoreFile     = "file"
	StoreDatabase = "database"
	StoreRedis    = "redis"
	StoreMinio    = "minio"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
