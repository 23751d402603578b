// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: a blank import of this package runs the
// init functions of each backend, which register their factories and DDL
// bootstrappers with the storage package. Binaries that should support only
// a subset of backends can blank-import the specific backend packages
// instead.
package all

import (
	_ "github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage/mysql"
	_ "github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage/postgres"
	_ "github.com/Sha661nk/B2B-ETL-Pipeline/internal/storage/sqlite"
)
