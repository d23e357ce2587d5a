// Package term is the low-level terminal I/O backend.
//
// Two variants implement one capability contract: a VT backend that
// speaks escape sequences over a raw tty, and a console backend that
// uses the native Windows console API. The selector picks a variant
// once at startup from the platform and an optional output override;
// no other code branches on platform. Both variants produce the same
// logical results for the shared operation set, degrading color depth
// where a terminal supports less than the style asks for.
package term
