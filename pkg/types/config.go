package types

// Config holds the parameters for opening the embedded database: the
// directory that holds the key-value storage file and the scratch copy of
// the SQLite database.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
