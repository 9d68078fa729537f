// Package bucket sorts romanized person records into the 27 alphabetic
// buckets used by the template: A through Z, then # for everything whose
// romanized title does not start with a Latin letter.
package bucket
