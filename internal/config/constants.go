package config

// DefaultDatabasePath is used by the server and CLI commands when no
// explicit database path is configured.
const DefaultDatabasePath = "./librarian.db"
