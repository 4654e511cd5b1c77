package tableview

import (
	"fmt"
	"strconv"
)

type person struct {
	ID      int
	Name    string
	Company string
	Age     int
}

func personID(p person) RowID { return strconv.Itoa(p.ID) }

func personColumns() []Column[person] {
	return []Column[person]{
		{ID: "name", Header: "Name", Accessor: func(p person) any { return p.Name }, Filter: TextFilter{}},
		{ID: "company", Header: "Company", Accessor: func(p person) any { return p.Company }, Filter: TextFilter{}},
		{ID: "age", Header: "Age", Accessor: func(p person) any { return p.Age }},
	}
}

func people(n int) []person {
	out := make([]person, n)
	for i := range out {
		out[i] = person{ID: i + 1, Name: fmt.Sprintf("person %02d", i+1), Company: "Acme"}
	}
	return out
}

func ids(rows []person) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
