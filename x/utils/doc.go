/*
Package utils contains various utils for easy development.

This contains decorators that add general functionality to the
whole handler stack: atomic writes via savepoints, panic
recovery, request logging and transaction tagging.
*/
package utils
