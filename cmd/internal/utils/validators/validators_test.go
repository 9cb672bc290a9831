package validators

import "testing"

type sample struct {
	Email    string `validate:"required,email,nospaces"`
	Password string `validate:"required,maxbytes=72"`
	Content  string `validate:"notblank"`
}

func TestCustomTags(t *testing.T) {
	validate := New()

	ok := sample{Email: "a@x.edu", Password: "secret", Content: "hello"}
	if err := validate.Struct(ok); err != nil {
		t.Fatalf("expected valid sample, got %v", err)
	}

	cases := map[string]sample{
		"blank content": {Email: "a@x.edu", Password: "secret", Content: "   "},
		"long password": {Email: "a@x.edu", Password: string(make([]byte, BcryptMaxBytes+1)), Content: "x"},
		"spaced email":  {Email: "a @x.edu", Password: "secret", Content: "x"},
	}
	for name, c := range cases {
		if err := validate.Struct(c); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
