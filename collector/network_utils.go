package collector

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"reflect"

	"github.com/Luismorlan/newsagg/collector/clients"
	Logger "github.com/Luismorlan/newsagg/utils/log"
	"github.com/pkg/errors"
)

// HttpGetAndParseJsonResponse will make an HTTP request to the specified URI.
// Then, it will parse the body as JSON into the specified response. Return
// error on any failure.
// Note that, failure not only include network issue, any non 200 response code
// will also be considered as a failure.
// The response passed in must be a pointer.
func HttpGetAndParseJsonResponse(client *clients.HttpClient, uri string, res interface{}) error {
	if reflect.ValueOf(res).Type().Kind() != reflect.Ptr {
		return errors.New("the passed in variable must be a pointer")
	}

	httpResponse, err := client.Get(uri)
	if err != nil {
		return err
	}
	defer httpResponse.Body.Close()

	body, err := ioutil.ReadAll(httpResponse.Body)
	if err != nil {
		return err
	}

	// Remove BOM before parsing, see https://en.wikipedia.org/wiki/Byte_order_mark for details.
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	err = json.Unmarshal(body, res)
	if err != nil {
		Logger.Log.Errorf("fail to parse response: %s, type: %T", body, res)
		return err
	}

	return nil
}
