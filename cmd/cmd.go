package cmd

// SkipServiceAnnotation marks commands that run without the label service.
const SkipServiceAnnotation = "nbl/skip-service"

var noService = map[string]string{SkipServiceAnnotation: "true"}
