package db

type Config struct {
	// Dir is a directory to keep database files
	Dir    string        `toml:"dir"`
	Badger *BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB configuration parameters
type BadgerConfig struct {
	Truncate bool `toml:"truncate"`
	FileIO   bool `toml:"file_io"`
}
