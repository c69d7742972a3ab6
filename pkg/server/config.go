package server

type Config struct {
	// Port is a server port to listen to
	Port int `toml:"port"`
	// BindAddress is the address to bind the web server to, "*" means all interfaces
	BindAddress string `toml:"bind_address"`
}
