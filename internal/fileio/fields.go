package fileio

import "github.com/basintools/basindb/internal/codec"

// Shorthand constructors for the field tables below.

func num(name string) codec.Field {
	return codec.Field{Name: name, Kind: codec.Float, Nullable: true}
}

func nums(names ...string) []codec.Field {
	out := make([]codec.Field, len(names))
	for i, n := range names {
		out[i] = num(n)
	}
	return out
}

func intf(name string) codec.Field {
	return codec.Field{Name: name, Kind: codec.Int}
}

func str(name string) codec.Field {
	return codec.Field{Name: name, Kind: codec.String, Nullable: true, Left: true}
}

func nameCol() codec.Field {
	return codec.Field{Name: "name", Kind: codec.String, Left: true}
}

// ref is a name reference resolved to the target table's surrogate key.
func ref(name, table string) codec.Field {
	return codec.Field{Name: name, Kind: codec.Name, RefTable: table, Nullable: true, Left: true}
}

// desc is the optional trailing description column shared by the
// parameter database formats.
var desc = &codec.Field{Name: "description", Kind: codec.String, Nullable: true, Left: true}

func fieldsOf(groups ...[]codec.Field) []codec.Field {
	var out []codec.Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
