// Package verify renders π as decimal text and measures how many leading
// characters agree with a reference digit corpus such as pi_one_mil.txt
// ("3." followed by one million decimals).
package verify
