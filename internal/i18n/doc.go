// Package i18n loads the response message catalogs and resolves the locale
// of a request.
//
// Messages live in embedded YAML files, one per locale, whose nested keys are
// flattened into dotted translation keys such as "auth.unauthorized". Message
// texts are golang.org/x/text/message format strings; positional verbs
// (%[1]s) let translations reorder their arguments.
package i18n
