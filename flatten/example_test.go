package flatten_test

import (
	"fmt"

	"github.com/ehsanranjbar/flatdoc/flatten"
	"github.com/ehsanranjbar/flatdoc/value"
)

func ExampleFlattener_Flatten() {
	doc, err := value.Unmarshal([]byte(`{"name": "bernard", "address": {"city": "melbourne", "code": 3000}, "colors": ["red", "blue"]}`))
	if err != nil {
		panic(err)
	}

	flat, err := flatten.New().Flatten(doc)
	if err != nil {
		panic(err)
	}
	fmt.Println(flat)
	// Output: {"name":"bernard","address.city":"melbourne","address.code":3000,"colors.0":"red","colors.1":"blue"}
}

func ExampleSurrounded() {
	doc, err := value.Unmarshal([]byte(`{"users": [{"name": "keith", "tags": []}]}`))
	if err != nil {
		panic(err)
	}

	f := flatten.New().
		WithSeparator("/").
		WithArrayFormatting(flatten.Surrounded("[", "]")).
		WithPreserveEmptyArrays(true)
	flat, err := f.Flatten(doc)
	if err != nil {
		panic(err)
	}
	fmt.Println(flat)
	// Output: {"users[0]/name":"keith","users[0]/tags":[]}
}

func ExampleKeyWillBeOverwrittenError() {
	doc, err := value.Unmarshal([]byte(`{"key": ["v1", "v2"], "key.0": "Oopsy"}`))
	if err != nil {
		panic(err)
	}

	_, err = flatten.New().Flatten(doc)
	fmt.Println(err)
	// Output: key "key.0" will be overwritten
}
