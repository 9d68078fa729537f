// Package romanize converts page titles to a Latin-alphabet form used for
// alphabetic bucketing and sorting.
//
// Han characters are converted to toneless Hanyu Pinyin with
// github.com/mozillazg/go-pinyin. Kana, which pinyin does not cover, are
// looked up in a static kana-to-romaji table embedded as YAML and parsed once.
// Full-width Latin letters and half-width katakana are folded with
// golang.org/x/text/width first, so "Ｆｏｏ" romanizes like "Foo". Every other
// character is kept unchanged.
package romanize
