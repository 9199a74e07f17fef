// Package kasane provides a layered configuration loader.
//
// The name comes from 重ね (kasane), "layering". A configuration directory
// holds up to three tiers of files that are merged into one configuration:
//
//	default.*   shared defaults                 (priority 1)
//	local.*     machine-local overrides         (priority 2)
//	<env>.*     environment-specific overrides  (priority 3)
//
// Files are merged with a deep merge: nested mappings combine key by key and
// any other value is replaced by the higher tier. JSON (.json) and YAML
// (.yaml, .yml) are recognized by default; other formats can be registered
// with WithCodec.
//
// Example:
//
//	store := kasane.New(kasane.WithEnvironment("production"))
//	if err := store.Load(ctx, "config"); err != nil {
//	    log.Fatal(err)
//	}
//	port, err := store.Query("server.port")
package kasane
