package shell

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/tasks/internal/model"
)

// Export writes list as indented JSON. Nothing is written to disk; tasks
// live only as long as the session.
func Export(w io.Writer, list []model.Task) error {
	if list == nil {
		list = []model.Task{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
