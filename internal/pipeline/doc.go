// Package pipeline runs measurement components over a sequence of scenes.
//
// This package is the composition root: it imports module, objects and
// measurement, but none of those packages import pipeline/.
package pipeline
