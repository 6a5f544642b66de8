package productcontroller

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexFloat accepts a JSON number or a numeric string. The admin UI sends
// prices both ways.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", str)
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type productRequest struct {
	Name            string     `json:"name"`
	Price           *flexFloat `json:"price"`
	CategoryID      string     `json:"categoryId"`
	ImageURL        *string    `json:"imageUrl"`
	MeasurementType string     `json:"measurementType"`
	ExternalCode    *string    `json:"externalCode"`
	Stock           *flexFloat `json:"stock"`
	Featured        *bool      `json:"featured"`
}
