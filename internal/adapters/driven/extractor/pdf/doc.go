// Package pdf extracts page text from PDF documents using pdfcpu.
//
// Each page's content streams are decoded and scanned for text-showing
// operators. Shown strings are decoded through the page's fonts: /ToUnicode
// CMaps first, then /Differences over WinAnsiEncoding for simple fonts.
// A page whose text cannot be decoded (such as an Identity-H font without
// /ToUnicode) yields empty text. Text positioning operators become line
// breaks; no layout analysis is attempted.
package pdf
