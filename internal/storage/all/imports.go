// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL renderers with the storage
// package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (erpload/internal/storage/sqlite)
//   - "postgres" (erpload/internal/storage/postgres)
package all

import (
	_ "erpload/internal/storage/postgres"
	_ "erpload/internal/storage/sqlite"
)
