package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	usersTable = "users"

	colID           = "id"
	colUsername     = "username"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colCreatedAt    = "created_at"
	colUpdatedAt    = "updated_at"

	authEventsTable = "auth_events"

	colSequence  = "sequence"
	colTimestamp = "timestamp"
	colKind      = "kind"
	colUserID    = "user_id"
)

var (
	usersColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colUsername, Type: field.TypeString, Size: 50},
		{Name: colEmail, Type: field.TypeString, Unique: true},
		{Name: colPasswordHash, Type: field.TypeString},
		{Name: colCreatedAt, Type: field.TypeTime},
		{Name: colUpdatedAt, Type: field.TypeTime},
	}
	usersTableDef = &schema.Table{
		Name:       usersTable,
		Columns:    usersColumns,
		PrimaryKey: []*schema.Column{usersColumns[0]},
	}

	authEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colKind, Type: field.TypeString},
		{Name: colUserID, Type: field.TypeInt, Nullable: true},
		{Name: colEmail, Type: field.TypeString},
	}
	authEventsTableDef = &schema.Table{
		Name:       authEventsTable,
		Columns:    authEventsColumns,
		PrimaryKey: []*schema.Column{authEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "authevent_timestamp", Columns: []*schema.Column{authEventsColumns[2]}},
			{Name: "authevent_kind", Columns: []*schema.Column{authEventsColumns[3]}},
		},
	}

	tables = []*schema.Table{usersTableDef, authEventsTableDef}
)

// usersUpdatedAtTrigger keeps updated_at current on any row update.
// Ent's migrator has no trigger support, so it is created with raw SQL.
const usersUpdatedAtTrigger = `CREATE TRIGGER IF NOT EXISTS users_updated_at
AFTER UPDATE ON users
FOR EACH ROW
BEGIN
	UPDATE users SET updated_at = CURRENT_TIMESTAMP WHERE id = OLD.id;
END`

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	if err := drv.Exec(ctx, usersUpdatedAtTrigger, []any{}, nil); err != nil {
		return fmt.Errorf("create trigger: %w", err)
	}
	return nil
}
