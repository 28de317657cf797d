package deploy

import (
	"fmt"
	"path"

	"github.com/nspcc-dev/neo-go/cli/smartcontract"
	"github.com/nspcc-dev/neo-go/pkg/compiler"
	"github.com/nspcc-dev/neo-go/pkg/config"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

// CompileSource compiles contract source code located in the given directory
// and builds its manifest from the config.yml file next to it.
func CompileSource(ctrPath string) (nef.File, manifest.Manifest, error) {
	// nef.NewFile() cares about version a lot.
	if config.Version == "" {
		config.Version = "0.0.0-splitter"
	}

	ne, di, err := compiler.CompileWithOptions(ctrPath, nil, nil)
	if err != nil {
		return nef.File{}, manifest.Manifest{}, fmt.Errorf("compile: %w", err)
	}

	conf, err := smartcontract.ParseContractConfig(path.Join(ctrPath, "config.yml"))
	if err != nil {
		return nef.File{}, manifest.Manifest{}, fmt.Errorf("parse contract config: %w", err)
	}

	o := &compiler.Options{}
	o.Name = conf.Name
	o.ContractEvents = conf.Events
	o.ContractSupportedStandards = conf.SupportedStandards
	o.Permissions = make([]manifest.Permission, len(conf.Permissions))
	for i := range conf.Permissions {
		o.Permissions[i] = manifest.Permission(conf.Permissions[i])
	}
	o.SafeMethods = conf.SafeMethods

	m, err := compiler.CreateManifest(di, o)
	if err != nil {
		return nef.File{}, manifest.Manifest{}, fmt.Errorf("build manifest: %w", err)
	}

	return *ne, *m, nil
}
