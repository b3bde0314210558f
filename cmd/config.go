package cmd

// Config carries application settings read from the environment at startup.
type Config struct {
	HTTPPort         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	OpenAPIPath      string
	StaleOrderTTLMin string
}
