// Package factory instantiates pluggable modules (metrics sinks, admission log
// stores) from configuration. A module is described by a type name and a raw
// settings map; each registered factory decodes the map into its own struct.
//
//	reg := factory.NewRegistry[logging.LogStore]()
//	_ = reg.Register("jsonl", func(conf map[string]any) (logging.LogStore, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return logging.NewJSONLStore(c.Path)
//	})
//	store, err := reg.Create(factory.ModuleConfig{Type: "jsonl", Conf: map[string]any{"path": "admissions.log"}})
package factory
