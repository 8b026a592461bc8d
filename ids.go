package fifotax

import (
	"strconv"

	"github.com/google/uuid"
)

// idNamespace scopes the name-based identifiers generated by Build.
var idNamespace = uuid.MustParse("5b0e5e0c-3f6a-4c1e-9d8f-6a2f1c7b9e21")

// sequence generates identifiers from a counter. The same sequence of calls
// always yields the same identifiers, they carry no meaning otherwise.
type sequence struct {
	n int
}

// next returns a new identifier for an object of the given kind.
func (s *sequence) next(kind string) string {
	s.n++
	return uuid.NewSHA1(idNamespace, []byte(kind+"/"+strconv.Itoa(s.n))).String()
}
