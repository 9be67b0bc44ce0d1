// Package install mirrors a theme folder into the fixed rEFInd theme
// directory.
package install
