package templates

const WrapperTemplate = `% Generated on {{.GeneratedDate}}
% Chart: {{.PlotFileName}}
\begin{figure}[htbp]
    \centering
    \resizebox{1\linewidth}{!}{\input{./{{.PlotFileName}} }}
    \caption[{{.ShortCaption}}]{ {{.Caption}} }
    \label{fig:{{.Label}}}
\end{figure}
`

type WrapperData struct {
	GeneratedDate string
	PlotFileName  string
	ShortCaption  string
	Caption       string
	Label         string
}
