package handlers

import (
	"encoding/json"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindMerge applies a JSON body over an already loaded record. Every
// top-level field present in the body replaces the stored value as a whole;
// absent fields keep their stored values. The result is then validated.
func bindMerge(c *gin.Context, dst any) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return err
	}

	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		if _, ok := present[jsonFieldName(f)]; ok {
			v.Field(i).SetZero()
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}
