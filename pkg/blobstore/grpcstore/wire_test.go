package grpcstore

import "testing"

func TestPutRequestRoundTrip(t *testing.T) {
	req := &putRequest{Key: "abc", Data: []byte("payload")}
	blob := req.Marshal()
	decoded := &putRequest{}
	if err := decoded.Unmarshal(blob); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Key != req.Key || string(decoded.Data) != string(req.Data) {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, req)
	}
}

func TestGetResponseRoundTrip(t *testing.T) {
	resp := &getResponse{Data: []byte("blob contents")}
	blob := resp.Marshal()
	decoded := &getResponse{}
	if err := decoded.Unmarshal(blob); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if string(decoded.Data) != string(resp.Data) {
		t.Errorf("round trip mismatch: got %q, want %q", decoded.Data, resp.Data)
	}
}

func TestExistsResponseRoundTrip(t *testing.T) {
	for _, exists := range []bool{true, false} {
		resp := &existsResponse{Exists: exists}
		blob := resp.Marshal()
		decoded := &existsResponse{}
		if err := decoded.Unmarshal(blob); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if decoded.Exists != exists {
			t.Errorf("round trip mismatch: got %v, want %v", decoded.Exists, exists)
		}
	}
}

func TestCodecMarshalUnmarshal(t *testing.T) {
	c := codec{}
	req := &existsRequest{Key: "k"}
	blob, err := c.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	decoded := &existsRequest{}
	if err := c.Unmarshal(blob, decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Key != req.Key {
		t.Errorf("codec round trip mismatch: got %q, want %q", decoded.Key, req.Key)
	}
}

func TestCodecRejectsForeignType(t *testing.T) {
	c := codec{}
	if _, err := c.Marshal("not a wireMessage"); err == nil {
		t.Error("expected error marshaling non-wireMessage value")
	}
}
