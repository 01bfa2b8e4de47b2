package chart

import (
	"fmt"
	"strings"

	"hermannm.dev/querybuilder/api"
	"hermannm.dev/querybuilder/format"
)

// Header text for the visualization area in its current state.
func Title(response *api.Response, loading bool, errorMessage string) (title string, subtitle string) {
	switch {
	case loading:
		return "Carregando...", "Aguarde enquanto buscamos seus dados"
	case errorMessage != "":
		return "Erro na Consulta", "Não foi possível gerar a visualização"
	case !response.IsEmpty():
		dimensionKeys, metricKeys := response.Keys()

		dimension := "dimensão"
		if len(dimensionKeys) > 0 {
			dimension = dimensionKeys[0]
		}

		title = format.Humanize(strings.Join(metricKeys, ", "))
		subtitle = fmt.Sprintf("Visualização por %s", format.Humanize(dimension))
		return title, subtitle
	default:
		return "Visualização", "Gere uma query ou pergunte à IA para começar"
	}
}
