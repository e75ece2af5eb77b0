package record

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestPayloadRoundTripPreservesStructure(t *testing.T) {
	src := []byte(`{"user":"x","nested":{"a":[1,2],"b":null},"cookie":{"maxAge":60000,"path":"/"}}`)

	var p Payload
	if err := json.Unmarshal(src, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.Cookie == nil {
		t.Fatal("cookie substructure not split out")
	}
	if _, ok := p.Values["cookie"]; ok {
		t.Fatal("cookie left in opaque values")
	}
	if string(p.Values["user"]) != `"x"` {
		t.Fatalf("user value mangled: %s", p.Values["user"])
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	var want, got map[string]interface{}
	if err := json.Unmarshal(src, &want); err != nil {
		t.Fatalf("unmarshal source: %v", err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal round-tripped payload: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("payload did not round-trip:\nwant %v\ngot  %v", want, got)
	}
}

func TestPayloadMaxAge(t *testing.T) {
	cases := []struct {
		name    string
		cookie  string
		want    time.Duration
		wantHit bool
	}{
		{"declared", `{"maxAge":60000}`, time.Minute, true},
		{"negative accepted", `{"maxAge":-1000}`, -time.Second, true},
		{"no maxAge field", `{"path":"/"}`, 0, false},
		{"wrong type", `{"maxAge":"soon"}`, 0, false},
		{"cookie not an object", `42`, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Payload{Cookie: json.RawMessage(tc.cookie)}
			got, ok := p.MaxAge()
			if ok != tc.wantHit || got != tc.want {
				t.Fatalf("MaxAge() = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantHit)
			}
		})
	}

	if _, ok := (&Payload{}).MaxAge(); ok {
		t.Fatal("payload without cookie reported a lifetime hint")
	}
	var nilPayload *Payload
	if _, ok := nilPayload.MaxAge(); ok {
		t.Fatal("nil payload reported a lifetime hint")
	}
}

func TestEncodeStampsTypeTag(t *testing.T) {
	rec := &Record{
		Expires: time.Now().Add(time.Hour).UnixMilli(),
		Session: Payload{Values: map[string]json.RawMessage{"user": json.RawMessage(`"x"`)}},
	}

	data, err := Encode(rec)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var doc struct {
		Expires int64           `json:"expires"`
		Session json.RawMessage `json:"session"`
		Type    string          `json:"type"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	if doc.Type != TypeTag {
		t.Fatalf("type tag = %q, want %q", doc.Type, TypeTag)
	}
	if doc.Expires != rec.Expires {
		t.Fatalf("expires = %d, want %d", doc.Expires, rec.Expires)
	}

	back, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(back.Session.Values["user"]) != `"x"` {
		t.Fatalf("payload lost in decode: %v", back.Session.Values)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected decode error for garbage document")
	}
}
