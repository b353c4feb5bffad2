package ports

// Logger é o log estruturado usado por serviços, repositórios e handlers.
// args são pares chave/valor ("analysis_id", 42).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With devolve um Logger que anexa args a todas as linhas (ex.: request_id)
	With(args ...any) Logger
}
