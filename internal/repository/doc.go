// Package repository implements data access against SurrealDB for users,
// events and saved events.
//
// Repositories speak raw SurrealQL through the database.Database interface
// and translate SurrealDB's response shapes (record IDs, CustomDateTime,
// status/result wrappers) into model types. Absent records surface as nil
// results, not errors; unique index violations surface as
// database.ErrDuplicate so services can map them to domain conflicts.
package repository
