// Package auth stores the xether CLI's session tokens, either inside the
// config file or in the operating system keychain.
package auth
