package httpx

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/gorilla/schema"
)

var decoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	// clients send more than we understand, eg. data[alerts][admin.sign_up].
	d.IgnoreUnknownKeys(true)
	return d
}()

// Params decodes the request parameters into the given struct based on the
// method and Content-Type header. Form keys in Mastodon's bracketed form,
// eg. subscription[keys][auth], are decoded as nested fields.
// Any failure is reported as a 400.
func Params(r *http.Request, v interface{}) error {
	switch r.Method {
	case "GET", "HEAD", "DELETE":
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return Error(http.StatusBadRequest, err)
		}
		return decode(v, values)
	case "POST", "PUT":
		switch mediaType(r) {
		case "application/json":
			if err := json.UnmarshalFull(r.Body, v); err != nil {
				return Error(http.StatusBadRequest, err)
			}
			return nil
		case "":
			// ice cubes, why you gotta do me like this?
			values, err := url.ParseQuery(r.URL.RawQuery)
			if err != nil {
				return Error(http.StatusBadRequest, err)
			}
			return decode(v, values)
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return Error(http.StatusBadRequest, err)
			}
			return decode(v, r.Form)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(0); err != nil {
				return Error(http.StatusBadRequest, err)
			}
			return decode(v, r.PostForm)
		default:
			return Error(http.StatusBadRequest, fmt.Errorf("unsupported media type: %q", r.Header.Get("Content-Type")))
		}
	default:
		return Error(http.StatusBadRequest, fmt.Errorf("unsupported method: %s", r.Method))
	}
}

func decode(v interface{}, values url.Values) error {
	if err := decoder.Decode(v, normalise(values)); err != nil {
		return Error(http.StatusBadRequest, err)
	}
	return nil
}

// normalise rewrites a[b][c] keys into the a.b.c paths gorilla/schema expects.
func normalise(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, v := range values {
		k = strings.ReplaceAll(k, "][", ".")
		k = strings.Replace(k, "[", ".", 1)
		k = strings.TrimSuffix(k, "]")
		out[k] = append(out[k], v...)
	}
	return out
}

// mediaType returns the media type of the request.
func mediaType(req *http.Request) string {
	return strings.TrimSpace(strings.Split(req.Header.Get("Content-Type"), ";")[0])
}
