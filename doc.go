/*
Query Build: fluent composer of MySQL-flavored SQL text. Statements are built
by chaining operations on a `Composer`; each operation consults the history of
previously applied clauses to decide where its output goes. For example, a FIELD
ordering right after ORDER BY goes to the front of the existing list, and a
JSON_EXTRACT right after WHERE rewrites the column of that predicate.

Key Features

• Statement kinds: SELECT, COUNT, INSERT, UPDATE, DELETE.

• Predicates: WHERE / AND / OR, IN / NOT IN, LIKE over multiple columns,
nestable groups, raw fragments with ordinal parameters.

• ORDER BY including MySQL FIELD() and RAND(), GROUP BY, HAVING, LIMIT, OFFSET,
joins, UNION and UNION ALL.

• MySQL JSON functions: JSON_EXTRACT, JSON_CONTAINS, JSON_SET, JSON_REPLACE,
JSON_ARRAY_APPEND, JSON_REMOVE, JSON_OBJECT.

• Struct support: columns and values from `db`-tagged fields, and client
orderings mapped from `json` field names to columns via `OrdParser`.

• Time zone statements prepended before the main statement.

• Every identifier and literal passes through a configurable denylist
`Sanitizer`.

• Sticky errors: the first failed operation is recorded, later ones are nops,
and the error is returned when finishing.

• Output either with inlined literals (`Composer.Finish`), or with placeholders
and arguments for `database/sql` (`Composer.Bind`).

Examples

	text, err := qbuild.Select(`id`, `title`).
		Table(`blogs`).
		Where(`id`, `=`, qbuild.Int(10)).
		And(`pt`, `>`, qbuild.Int(90)).
		Or(`id`, `=`, qbuild.Int(20)).
		Finish()

	// SELECT id, title FROM blogs WHERE id = 10 AND pt > 90 OR id = 20;

	text, args, err := qbuild.Update().
		Table(`blogs`).
		Set(`title`, qbuild.Str(`Hello`)).
		Where(`id`, `=`, qbuild.Int(10)).
		Bind()

	// UPDATE blogs SET title = ? WHERE id = ?;
	// []any{`Hello`, 10}

See the sibling package "qconf" for loading `Options` from YAML files and
environment variables.
*/
package qbuild
