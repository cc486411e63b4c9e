package mapper

import "gorm.io/datatypes"

func tagsToModel(tags []string) datatypes.JSONSlice[string] {
	if tags == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](tags)
}

func tagsToEntity(tags datatypes.JSONSlice[string]) []string {
	if tags == nil {
		return []string{}
	}
	return []string(tags)
}
