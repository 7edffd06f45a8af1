package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umlsql/umlsql/schema"
)

// Introspect reads the tables of one database schema into a relational
// schema model. Tables listed in exclude are skipped. Tables whose
// primary key is exactly its two foreign-key columns are marked as join
// tables, so the UML conversion turns them back into many-to-many
// associations.
func Introspect(ctx context.Context, pool *pgxpool.Pool, schemaName string, exclude []string) (*schema.Schema, error) {
	excluded := make(map[string]bool)
	for _, name := range exclude {
		excluded[name] = true
	}

	tablesQuery := `
	SELECT table_name
	FROM information_schema.tables
	WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	ORDER BY table_name;
	`

	rows, err := pool.Query(ctx, tablesQuery, schemaName)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %v", err)
	}
	defer rows.Close()

	var tableNames []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("scanning table name: %v", err)
		}
		if excluded[tableName] {
			continue
		}
		tableNames = append(tableNames, tableName)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating table rows: %v", rows.Err())
	}

	s := &schema.Schema{}
	for _, tableName := range tableNames {
		columns, err := getColumns(ctx, pool, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting columns for table %s: %v", tableName, err)
		}

		foreignKeys, err := getForeignKeys(ctx, pool, schemaName, tableName)
		if err != nil {
			return nil, fmt.Errorf("getting foreign keys for table %s: %v", tableName, err)
		}

		s.Tables = append(s.Tables, schema.Table{
			Name:        tableName,
			Columns:     columns,
			ForeignKeys: foreignKeys,
		})
	}

	markJoinTables(s)
	return s, nil
}

func getColumns(ctx context.Context, pool *pgxpool.Pool, schemaName, tableName string) ([]schema.Column, error) {
	columnsQuery := `
	SELECT column_name, data_type, (is_nullable = 'YES') AS is_nullable
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position;
	`

	rows, err := pool.Query(ctx, columnsQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %v", err)
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var dataType string
		if err := rows.Scan(&col.Name, &dataType, &col.Nullable); err != nil {
			return nil, fmt.Errorf("scanning column: %v", err)
		}
		col.Type = normalizeType(dataType)
		columns = append(columns, col)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating column rows: %v", rows.Err())
	}

	primaryKeys, err := getPrimaryKeyColumns(ctx, pool, schemaName, tableName)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if primaryKeys[columns[i].Name] {
			columns[i].PrimaryKey = true
			columns[i].Nullable = false
		}
	}

	return columns, nil
}

func getPrimaryKeyColumns(ctx context.Context, pool *pgxpool.Pool, schemaName, tableName string) (map[string]bool, error) {
	primaryKeysQuery := `
	SELECT kcu.column_name
	FROM information_schema.table_constraints tc
	JOIN information_schema.key_column_usage kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	WHERE tc.constraint_type = 'PRIMARY KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2;
	`

	rows, err := pool.Query(ctx, primaryKeysQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying primary key: %v", err)
	}
	defer rows.Close()

	primaryKeys := make(map[string]bool)
	for rows.Next() {
		var columnName string
		if err := rows.Scan(&columnName); err != nil {
			return nil, fmt.Errorf("scanning primary key column: %v", err)
		}
		primaryKeys[columnName] = true
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating primary key rows: %v", rows.Err())
	}

	return primaryKeys, nil
}

func getForeignKeys(ctx context.Context, pool *pgxpool.Pool, schemaName, tableName string) ([]schema.ForeignKey, error) {
	foreignKeysQuery := `
	SELECT
		kcu.column_name,
		ccu.table_name AS foreign_table_name,
		ccu.column_name AS foreign_column_name
	FROM information_schema.table_constraints AS tc
	JOIN information_schema.key_column_usage AS kcu
		ON tc.constraint_name = kcu.constraint_name
		AND tc.table_schema = kcu.table_schema
	JOIN information_schema.constraint_column_usage AS ccu
		ON ccu.constraint_name = tc.constraint_name
		AND ccu.table_schema = tc.table_schema
	WHERE tc.constraint_type = 'FOREIGN KEY'
		AND tc.table_schema = $1
		AND tc.table_name = $2
	ORDER BY tc.constraint_name;
	`

	rows, err := pool.Query(ctx, foreignKeysQuery, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("querying foreign keys: %v", err)
	}
	defer rows.Close()

	var foreignKeys []schema.ForeignKey
	for rows.Next() {
		var fk schema.ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn); err != nil {
			return nil, fmt.Errorf("scanning foreign key: %v", err)
		}
		foreignKeys = append(foreignKeys, fk)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating foreign key rows: %v", rows.Err())
	}

	return foreignKeys, nil
}

// markJoinTables flags tables that realize a many-to-many association:
// exactly two foreign keys whose local columns make up the whole
// two-column primary key.
func markJoinTables(s *schema.Schema) {
	for i := range s.Tables {
		t := &s.Tables[i]
		if len(t.ForeignKeys) != 2 {
			continue
		}

		var pk []string
		for _, col := range t.Columns {
			if col.PrimaryKey {
				pk = append(pk, col.Name)
			}
		}
		if len(pk) != 2 {
			continue
		}

		locals := map[string]bool{
			t.ForeignKeys[0].Column: true,
			t.ForeignKeys[1].Column: true,
		}
		if locals[pk[0]] && locals[pk[1]] && len(locals) == 2 {
			t.Join = true
		}
	}
}

// normalizeType folds PostgreSQL's reported data types into the
// vocabulary the DDL generator writes, so introspected schemas render
// and convert like generated ones. Unlisted types pass through
// uppercased.
func normalizeType(dataType string) string {
	switch strings.ToLower(dataType) {
	case "integer", "int", "int4":
		return "INT"
	case "smallint", "int2":
		return "SMALLINT"
	case "bigint", "int8":
		return "BIGINT"
	case "character varying", "varchar":
		return "VARCHAR(255)"
	case "character", "char":
		return "CHAR"
	case "text":
		return "TEXT"
	case "boolean":
		return "BOOLEAN"
	case "real":
		return "FLOAT"
	case "double precision":
		return "DOUBLE"
	case "numeric", "decimal":
		return "FLOAT"
	case "date":
		return "DATE"
	case "timestamp", "timestamp without time zone", "timestamp with time zone":
		return "TIMESTAMP"
	default:
		return strings.ToUpper(dataType)
	}
}
