package base

import (
	"io"

	fastJson "github.com/goccy/go-json"
)

/***************************************
 * JSON
 ***************************************/

type JsonOptions struct {
	PrettyPrint bool
}

type JsonOptionFunc = func(*JsonOptions)

func OptionJsonPrettyPrint(enabled bool) JsonOptionFunc {
	return func(jo *JsonOptions) {
		jo.PrettyPrint = enabled
	}
}

func JsonSerialize(x interface{}, dst io.Writer, options ...JsonOptionFunc) error {
	var opts JsonOptions
	for _, it := range options {
		it(&opts)
	}

	encoder := fastJson.NewEncoder(dst)

	if opts.PrettyPrint {
		encoder.SetIndent("", "  ")
	} else {
		encoder.SetIndent("", "")
	}

	return encoder.EncodeWithOption(x,
		fastJson.DisableHTMLEscape(),
		fastJson.DisableNormalizeUTF8())
}
func JsonDeserialize(x interface{}, src io.Reader) error {
	decoder := fastJson.NewDecoder(src)
	decoder.DisallowUnknownFields()
	return decoder.Decode(x)
}
