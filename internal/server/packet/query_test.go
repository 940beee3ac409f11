package packet

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResponseKeepsZeroHeight(t *testing.T) {
	data, err := json.Marshal(Response{Type: TypeHeight, ID: 3})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"height":0`) {
		t.Errorf("Marshal = %s, want a zero height field", data)
	}

	var resp Response
	if err := json.Unmarshal([]byte(`{"type":"height","id":3,"height":0}`), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Height != 0 || resp.Error != "" {
		t.Errorf("Unmarshal = %+v", resp)
	}
}
