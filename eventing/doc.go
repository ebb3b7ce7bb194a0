/*
Package eventing decodes key events once, at the codec boundary, into a
tagged variant with a common Header and one payload struct per kind,
instead of carrying them around as untyped maps for their whole lifetime.
*/
package eventing
