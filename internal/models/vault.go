package models

// Keys of the write-once vault_config table.
const (
	ConfigKeySalt     = "salt"
	ConfigKeyVerifier = "verifier"
)

// Status is the externally visible vault state.
type Status struct {
	Configured bool `json:"configured"`
	Unlocked   bool `json:"unlocked"`
}

// VaultConfig is the persisted salt and verifier, both still encoded.
type VaultConfig struct {
	Salt     string `json:"salt"`
	Verifier string `json:"verifier"`
}
