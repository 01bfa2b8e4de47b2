package query

import "hermannm.dev/enumnames"

type SortDirection uint8

const (
	SortAscending SortDirection = iota + 1
	SortDescending
)

var sortDirectionNames = enumnames.NewMap(map[SortDirection]string{
	SortAscending:  "asc",
	SortDescending: "desc",
})

var sortDirectionLabels = map[SortDirection]string{
	SortAscending:  "Ascendente",
	SortDescending: "Decrescente",
}

func ParseSortDirection(name string) (SortDirection, bool) {
	return sortDirectionNames.EnumValueFromName(name)
}

func (direction SortDirection) IsValid() bool {
	_, ok := sortDirectionNames.GetName(direction)
	return ok
}

func (direction SortDirection) String() string {
	return sortDirectionNames.GetNameOrFallback(direction, "INVALID_SORT_DIRECTION")
}

func (direction SortDirection) Label() string {
	if label, ok := sortDirectionLabels[direction]; ok {
		return label
	}
	return direction.String()
}

func (direction SortDirection) MarshalJSON() ([]byte, error) {
	return sortDirectionNames.MarshalToNameJSON(direction)
}

func (direction *SortDirection) UnmarshalJSON(bytes []byte) error {
	return sortDirectionNames.UnmarshalFromNameJSON(bytes, direction)
}
