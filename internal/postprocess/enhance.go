package postprocess

import "strings"

// ChartJSCDN is the Chart.js bundle injected when a chart request comes back
// without the library.
const ChartJSCDN = "https://cdn.jsdelivr.net/npm/chart.js@4.4.0/dist/chart.umd.min.js"

const chartScriptTag = `<script src="` + ChartJSCDN + `"></script>`

// Spanish and English vocabulary that marks a request as chart-related.
var chartKeywords = []string{
	"gráfico", "grafico", "chart", "gráfica", "grafica",
	"barras", "bar", "column", "columna",
	"donut", "dona", "pie", "pastel", "torta",
	"línea", "line", "linea",
	"área", "area",
	"radar", "polar",
}

// NeedsCharts reports whether the request asks for charts.
func NeedsCharts(request string) bool {
	lower := strings.ToLower(request)
	for _, kw := range chartKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// InjectChartJS adds the Chart.js script tag before </body>, falling back to
// </html>, then to appending. Documents that already load Chart.js pass
// through unchanged.
func InjectChartJS(content string) string {
	if strings.Contains(content, "chart.js") ||
		strings.Contains(content, "Chart.js") ||
		strings.Contains(content, "chartjs") {
		return content
	}

	if strings.Contains(content, "</body>") {
		return strings.Replace(content, "</body>", chartScriptTag+"\n</body>", 1)
	}
	if strings.Contains(content, "</html>") {
		return strings.Replace(content, "</html>", chartScriptTag+"\n</html>", 1)
	}
	return content + "\n" + chartScriptTag
}

// Enhance applies request-driven library injection.
func Enhance(content, request string) string {
	if NeedsCharts(request) {
		return InjectChartJS(content)
	}
	return content
}
