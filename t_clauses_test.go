package qbuild

import "testing"

func TestComposer_Set(t *testing.T) {
	eq(t, `UPDATE SET a = 1, b = 2;`, finish(t, Update().Set(`a`, Int(1)).Set(`b`, Int(2))))

	eq(
		t,
		`UPDATE blogs SET title = 'Hello', author = 'Bob';`,
		finish(t, Update().Table(`blogs`).Set(`title`, Str(`Hello`)).Set(`author`, Str(`Bob`))),
	)

	eq(
		t,
		`UPDATE t SET a = NULL WHERE id = 1 SET b = FROM_UNIXTIME(2);`,
		finish(t, Update().Table(`t`).Set(`a`, nil).Where(`id`, `=`, Int(1)).Set(`b`, Epoch(2))),
	)

	text, args := bind(t, Update().Table(`t`).Set(`a`, Str(`x`)).Set(`b`, Datetime(`NOW()`)).Set(`c`, Null{}))
	eq(t, `UPDATE t SET a = ?, b = NOW(), c = NULL;`, text)
	eq(t, []any{`x`}, args)

	fails(t, ErrCodeInvalidInput, Update().Set(``, Int(1)))
	fails(t, ErrCodeRejected, Update().Set(`a`, Str(`sleep(10)`)))
	fails(t, ErrCodeRejected, Update().Set(`a;`, Int(1)))
}

func TestComposer_OrderBy(t *testing.T) {
	base := func() *Composer { return Select(`*`).Table(`t`) }

	eq(t, `SELECT * FROM t ORDER BY id ASC, w DESC;`, finish(t, base().OrderBy(`id`, `asc`).OrderBy(`w`, `desc`)))
	eq(t, `SELECT * FROM t ORDER BY id;`, finish(t, base().OrderBy(`id`, ``)))
	eq(t, `SELECT * FROM t ORDER BY id DESC;`, finish(t, base().OrderBy(`id`, `DeSc`)))
	eq(
		t,
		`SELECT * FROM t WHERE a = 1 ORDER BY id ASC LIMIT 1;`,
		finish(t, base().Where(`a`, `=`, Int(1)).OrderBy(`id`, `ASC`).Limit(1)),
	)

	fails(t, ErrCodeInvalidDirection, base().OrderBy(`id`, `up`))
	fails(t, ErrCodeInvalidDirection, base().OrderBy(`id`, ` asc`))
	fails(t, ErrCodeInvalidInput, base().OrderBy(``, `asc`))
	fails(t, ErrCodeRejected, base().OrderBy(`id/*`, `asc`))

	fails(t, ErrCodeDuplicateOrdering, base().OrderBy(`id`, `asc`).Limit(1).OrderBy(`w`, `desc`))
	fails(t, ErrCodeDuplicateOrdering, base().OrderBy(`id`, `asc`).Where(`a`, `=`, Int(1)).OrderBy(`w`, `desc`))
}

func TestComposer_OrderRandom(t *testing.T) {
	base := func() *Composer { return Select(`*`).Table(`t`) }

	eq(t, `SELECT * FROM t ORDER BY RAND();`, finish(t, base().OrderRandom()))
	eq(t, `SELECT * FROM t ORDER BY RAND(), id ASC;`, finish(t, base().OrderRandom().OrderBy(`id`, `asc`)))

	fails(t, ErrCodeDuplicateOrdering, base().OrderBy(`id`, `asc`).OrderRandom())
	fails(t, ErrCodeDuplicateOrdering, base().OrderRandom().OrderRandom())
}

func TestComposer_OrderByField(t *testing.T) {
	base := func() *Composer { return Select(`*`).Table(`t`) }
	vals := []Value{Str(`a`), Str(`b`)}

	eq(
		t,
		`SELECT * FROM t ORDER BY FIELD(status, 'a', 'b') DESC;`,
		finish(t, base().OrderByField(`status`, vals, `desc`)),
	)

	eq(
		t,
		`SELECT * FROM t ORDER BY FIELD(status, 'a', 'b') DESC, id ASC;`,
		finish(t, base().OrderBy(`id`, `asc`).OrderByField(`status`, vals, `desc`)),
	)

	eq(
		t,
		`SELECT * FROM t ORDER BY FIELD(a, 1), FIELD(b, 2);`,
		finish(t, base().OrderByField(`a`, []Value{Int(1)}, ``).OrderByField(`b`, []Value{Int(2)}, ``)),
	)

	eq(
		t,
		`SELECT * FROM t ORDER BY FIELD(a, 1), id ASC, FIELD(b, 2);`,
		finish(t, base().OrderBy(`id`, `asc`).
			OrderByField(`a`, []Value{Int(1)}, ``).
			OrderByField(`b`, []Value{Int(2)}, ``)),
	)

	eq(
		t,
		`SELECT * FROM t ORDER BY FIELD(a, 1), w DESC;`,
		finish(t, base().OrderByField(`a`, []Value{Int(1)}, ``).OrderBy(`w`, `desc`)),
	)

	val := base().Where(`x`, `=`, Str(` ORDER BY `)).OrderBy(`id`, `asc`).OrderByField(`status`, vals, ``)
	eq(t, `SELECT * FROM t WHERE x = ' ORDER BY ' ORDER BY FIELD(status, 'a', 'b'), id ASC;`, finish(t, val))

	text, args := bind(t, base().OrderBy(`id`, `asc`).OrderByField(`status`, vals, `asc`))
	eq(t, `SELECT * FROM t ORDER BY FIELD(status, ?, ?) ASC, id ASC;`, text)
	eq(t, []any{`a`, `b`}, args)

	fails(t, ErrCodeInvalidInput, base().OrderByField(`status`, nil, ``))
	fails(t, ErrCodeInvalidDirection, base().OrderByField(`status`, vals, `sideways`))
	fails(t, ErrCodeRejected, base().OrderByField(`status`, []Value{Str(`union select`)}, ``))
	fails(t, ErrCodeDuplicateOrdering, base().OrderBy(`id`, ``).Limit(1).OrderByField(`status`, vals, ``))
}

func TestComposer_GroupBy(t *testing.T) {
	eq(t, `SELECT a FROM t GROUP BY a, b;`, finish(t, Select(`a`).Table(`t`).GroupBy(`a`, `b`)))
	eq(t, `SELECT a FROM t GROUP BY a, b, c;`, finish(t, Select(`a`).Table(`t`).GroupBy(`a`).GroupBy(`b`, `c`)))

	fails(t, ErrCodeInvalidInput, Select(`a`).Table(`t`).GroupBy())
	fails(t, ErrCodeInvalidInput, Select(`a`).Table(`t`).GroupBy(`a`, ``))
}

func TestComposer_Having(t *testing.T) {
	eq(
		t,
		`SELECT a FROM t GROUP BY a HAVING cnt > 1 AND cnt < 10 ORDER BY a DESC;`,
		finish(t, Select(`a`).Table(`t`).
			GroupBy(`a`).
			Having(`cnt`, `>`, Int(1)).
			Having(`cnt`, `<`, Int(10)).
			OrderBy(`a`, `desc`)),
	)

	text, args := bind(t, Select(`a`).Table(`t`).GroupBy(`a`).Having(`cnt`, `>=`, Int(2)))
	eq(t, `SELECT a FROM t GROUP BY a HAVING cnt >= ?;`, text)
	eq(t, []any{2}, args)

	fails(t, ErrCodeInvalidOperator, Select(`a`).Table(`t`).Having(`cnt`, `LIKE`, Int(1)))
	fails(t, ErrCodeInvalidInput, Select(`a`).Table(`t`).Having(``, `=`, Int(1)))
}

func TestComposer_Limit_Offset(t *testing.T) {
	eq(t, `SELECT * FROM t LIMIT 10 OFFSET 20;`, finish(t, Select(`*`).Table(`t`).Limit(10).Offset(20)))
	eq(t, `SELECT * FROM t LIMIT 0;`, finish(t, Select(`*`).Table(`t`).Limit(0)))

	text, args := bind(t, Select(`*`).Table(`t`).Where(`a`, `=`, Int(1)).Limit(10).Offset(20))
	eq(t, `SELECT * FROM t WHERE a = ? LIMIT 10 OFFSET 20;`, text)
	eq(t, []any{1}, args)

	fails(t, ErrCodeInvalidInput, Select(`*`).Table(`t`).Limit(-1))
	fails(t, ErrCodeInvalidInput, Select(`*`).Table(`t`).Offset(-1))
	fails(t, ErrCodeInvalidState, Select(`*`).Table(`t`).Limit(1).Limit(2))
	fails(t, ErrCodeInvalidState, Select(`*`).Table(`t`).Offset(1).Limit(1).Offset(2))
}

func TestComposer_joins(t *testing.T) {
	eq(
		t,
		`SELECT * FROM a INNER JOIN b ON a.id = b.a_id LEFT JOIN c ON b.id = c.b_id RIGHT JOIN d ON c.id = d.c_id WHERE a.x = 1;`,
		finish(t, Select(`*`).Table(`a`).
			InnerJoin(`b`, `a.id`, `b.a_id`).
			LeftJoin(`c`, `b.id`, `c.b_id`).
			RightJoin(`d`, `c.id`, `d.c_id`).
			Where(`a.x`, `=`, Int(1))),
	)

	fails(t, ErrCodeInvalidInput, Select(`*`).Table(`a`).InnerJoin(``, `a.id`, `b.id`))
	fails(t, ErrCodeInvalidInput, Select(`*`).Table(`a`).LeftJoin(`b`, `a.id`, ``))
	fails(t, ErrCodeRejected, Select(`*`).Table(`a`).RightJoin(`b`, `a.id`, `b.id--`))
}

func TestComposer_Union(t *testing.T) {
	sel := func(table string) *Composer { return Select(`id`).Table(table) }

	eq(
		t,
		`(SELECT id FROM a) UNION (SELECT id FROM b);`,
		finish(t, sel(`a`).Union(sel(`b`))),
	)

	eq(
		t,
		`(SELECT id FROM a) UNION (SELECT id FROM b) UNION (SELECT id FROM c);`,
		finish(t, sel(`a`).Union(sel(`b`), sel(`c`))),
	)

	eq(
		t,
		`(SELECT id FROM a) UNION (SELECT id FROM b) UNION ALL (SELECT id FROM c);`,
		finish(t, sel(`a`).Union(sel(`b`)).UnionAll(sel(`c`))),
	)

	eq(
		t,
		`(SELECT id FROM a WHERE x = 1) UNION ALL (SELECT id FROM b ORDER BY id ASC);`,
		finish(t, sel(`a`).Where(`x`, `=`, Int(1)).UnionAll(sel(`b`).OrderBy(`id`, `asc`))),
	)

	text, args := bind(t, sel(`a`).Where(`x`, `=`, Int(1)).Union(sel(`b`).Where(`y`, `=`, Int(2))))
	eq(t, `(SELECT id FROM a WHERE x = ?) UNION (SELECT id FROM b WHERE y = ?);`, text)
	eq(t, []any{1, 2}, args)
}

func TestComposer_Union_operand_isolation(t *testing.T) {
	other := Select(`id`).Table(`b`)
	val := Select(`id`).Table(`a`).Union(other)
	other.Where(`x`, `=`, Int(1))

	eq(t, `(SELECT id FROM a) UNION (SELECT id FROM b);`, finish(t, val))
	eq(t, `SELECT id FROM b WHERE x = 1;`, finish(t, other))
}

func TestComposer_Union_invalid(t *testing.T) {
	sel := func(table string) *Composer { return Select(`id`).Table(table) }

	fails(t, ErrCodeInvalidInput, sel(`a`).Union())
	fails(t, ErrCodeInvalidInput, sel(`a`).Union(nil))
	fails(t, ErrCodeInvalidOperator, sel(`a`).Union(sel(`b`).Where(`x`, `~`, Int(1))))
	fails(t, ErrCodeUnbalancedGroup, sel(`a`).UnionAll(sel(`b`).WhereGroup()))
	fails(t, ErrCodeInvalidInput, sel(`a`).Union(sel(`b`).TimeZone(`UTC`)))
}

func TestComposer_TimeZone(t *testing.T) {
	val := Select(`id`).Table(`t`).TimeZone(`+00:00`)
	eq(t, `SET time_zone = '+00:00'; SELECT id FROM t;`, finish(t, val))
	eq(t, hist(ClauseSelect, ClauseTimezone, ClauseTable, ClauseFinish), val.History())

	val = Select(`id`).Table(`t`)
	val.TimeZone(`+00:00`)
	eq(t, ClauseTable, val.Last())

	eq(
		t,
		`SET GLOBAL time_zone = 'Europe/Berlin'; SET time_zone = '+00:00'; UPDATE t SET a = 1;`,
		finish(t, Update().TimeZone(`+00:00`).Table(`t`).GlobalTimeZone(`Europe/Berlin`).Set(`a`, Int(1))),
	)

	text, args := bind(t, Select(`id`).Table(`t`).Where(`a`, `=`, Int(1)).TimeZone(`UTC`))
	eq(t, `SET time_zone = 'UTC'; SELECT id FROM t WHERE a = ?;`, text)
	eq(t, []any{1}, args)

	fails(t, ErrCodeInvalidInput, Select(`id`).TimeZone(``))
	fails(t, ErrCodeRejected, Select(`id`).GlobalTimeZone(`UTC'; drop table t`))
}
