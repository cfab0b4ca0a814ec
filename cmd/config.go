package cmd

// Config carries everything the composition root needs to assemble the
// service. Values come from the environment via cmd/app/main.go.
type Config struct {
	HTTPPort string

	// Snapshot database. Driver selects "postgres" or "sqlite"; the DB*
	// fields apply to postgres, SqlitePath to sqlite.
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SqlitePath string

	// Route cache. An empty address disables caching.
	RedisAddr       string
	RedisTTLSeconds int

	// World grid and pathfinding.
	GridWidth       int
	GridHeight      int
	TileSize        float64
	SearchRadius    int
	UseSpatialIndex bool
	IndexCapacity   int
	IndexMaxDepth   int

	// Transport economics.
	CostPerTileUnit float64
	FixedCost       float64
	MaxPerTrip      int
	MarketNode      int64
	StartingBalance float64
}
