// Package pipeline runs the template generation as a sequence of steps.
//
// Every step receives the same model.Run and fills in what it produces:
// the fetch step collects the person list, the romanize step attaches
// romanized titles, the bucket step groups them by letter, the partition
// step chooses the template columns and the render step writes the
// template text. Cancellation is checked between steps and the first
// failing step aborts the run.
package pipeline
