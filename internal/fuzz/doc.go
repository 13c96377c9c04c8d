
// Package fuzztests houses Go fuzz harnesses for the zara front end
// (source -> lexer -> symbol collection). They guard against panics, broken
// token spans and hangs on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер и
// сборщик символов, проверяя инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/driver,
// internal/diag, internal/testkit.

package fuzztests
