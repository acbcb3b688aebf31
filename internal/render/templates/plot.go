package templates

const PlotTemplate = `% Generated on {{.GeneratedDate}}
% Chart: {{.Title}}
% Series: {{len .Plots}}
\begin{tikzpicture}
	\begin{axis}[
		title={ {{.Title}} },
		xlabel={ {{.XLabel}} },
		ylabel={ {{.YLabel}} },
		width={{.Width}}in,
		height={{.Height}}in,
		xmin={{.XMin}}, xmax={{.XMax}},
		ymin={{.YMin}}, ymax={{.YMax}},
		unbounded coords=jump,
{{- if .Grid}}
		grid=major,
		grid style=dashed,
{{- end}}
{{- if .Legend}}
		legend pos=north east,
{{- end}}
	]
{{range .Plots}}
\addplot+[{{.Style}}]
  coordinates {
{{range .Coordinates}}    {{.}}
{{end}}  };
{{- if $.Legend}}
\addlegendentry{ {{.LegendEntry}} }
{{- end}}
{{end}}
	\end{axis}
\end{tikzpicture}
`

type PlotData struct {
	GeneratedDate string
	Title         string
	XLabel        string
	YLabel        string
	Width         string
	Height        string
	XMin          string
	XMax          string
	YMin          string
	YMax          string
	Grid          bool
	Legend        bool
	Plots         []PlotSeries
}

type PlotSeries struct {
	Style       string
	LegendEntry string
	Coordinates []string
}
