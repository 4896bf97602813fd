package identity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Key es la forma canónica (string) de un identificador, usada solo para comparar.
type Key string

// Absent es el sentinel para "sin identidad". Nunca matchea con nada.
const Absent Key = ""

// maxDepth corta referencias anidadas patológicas ({id: {id: {...}}}).
const maxDepth = 8

// Ref es una referencia anidada tipada (p.ej. faculty: {id, username}).
type Ref struct {
	ID       any    `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
}

func (k Key) IsAbsent() bool { return k == Absent }

// Normalize convierte cualquier representación soportada en su Key.
// Es total: formas desconocidas devuelven Absent.
func Normalize(v any) Key {
	return normalize(v, 0)
}

func normalize(v any, depth int) Key {
	if depth > maxDepth {
		return Absent
	}

	switch x := v.(type) {
	case nil:
		return Absent
	case Key:
		return x
	case string:
		// verbatim: "042" no es "42"
		return Key(x)
	case json.Number:
		return numberKey(x)
	case int:
		return Key(strconv.FormatInt(int64(x), 10))
	case int8:
		return Key(strconv.FormatInt(int64(x), 10))
	case int16:
		return Key(strconv.FormatInt(int64(x), 10))
	case int32:
		return Key(strconv.FormatInt(int64(x), 10))
	case int64:
		return Key(strconv.FormatInt(x, 10))
	case uint:
		return Key(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return Key(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return Key(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return Key(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return Key(strconv.FormatUint(x, 10))
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case Ref:
		return refKey(x.ID, x.Username, depth)
	case *Ref:
		if x == nil {
			return Absent
		}
		return refKey(x.ID, x.Username, depth)
	case map[string]any:
		return refKey(x["id"], x["username"], depth)
	default:
		return Absent
	}
}

// Facets devuelve todas las keys no ausentes que lleva un valor.
// Un escalar aporta una; una referencia aporta su id y su username.
func Facets(v any) []Key {
	id, username, ok := refParts(v)
	if !ok {
		if k := Normalize(v); !k.IsAbsent() {
			return []Key{k}
		}
		return nil
	}

	out := make([]Key, 0, 2)
	if k := normalize(id, 1); !k.IsAbsent() {
		out = append(out, k)
	}
	if k := normalize(username, 1); !k.IsAbsent() {
		out = append(out, k)
	}
	return out
}

func refParts(v any) (id, username any, ok bool) {
	switch x := v.(type) {
	case Ref:
		return x.ID, x.Username, true
	case *Ref:
		if x == nil {
			return nil, nil, false
		}
		return x.ID, x.Username, true
	case map[string]any:
		return x["id"], x["username"], true
	default:
		return nil, nil, false
	}
}

func refKey(id, username any, depth int) Key {
	if k := normalize(id, depth+1); !k.IsAbsent() {
		return k
	}
	return normalize(username, depth+1)
}

// numberKey deja los enteros tal cual (sin perder precisión en ids grandes);
// 42.0 o 4.2e1 pasan por float y quedan como "42".
func numberKey(n json.Number) Key {
	s := n.String()
	if isPlainInt(s) {
		if s == "-0" {
			return "0"
		}
		return Key(s)
	}
	f, err := n.Float64()
	if err != nil {
		return Absent
	}
	return formatFloat(f, 64)
}

func isPlainInt(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func formatFloat(f float64, bits int) Key {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Absent
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	// -0 y 0 son el mismo id
	if s == "-0" {
		s = "0"
	}
	return Key(s)
}
